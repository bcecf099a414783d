package astro

import (
	"fmt"
	"math/rand"
	"time"

	"andromeda/internal/models"
)

// Фиксированный каталог явлений для mock-данных.
var mockEventCatalog = []struct {
	Type        string
	Description string
}{
	{"Mercury greatest elongation", "Mercury reaches its maximum angular distance from the Sun"},
	{"Venus conjunction with the Moon", "Venus passes close to the Moon"},
	{"Mars at opposition", "Mars is on the opposite side of the sky from the Sun"},
	{"Jupiter at peak brightness", "Jupiter reaches its maximum brightness"},
	{"Saturn visibility", "Optimal conditions for observing Saturn"},
	{"ISS flyover", "The International Space Station is visible to the naked eye"},
}

var mockMoonPhases = []string{"New Moon", "First Quarter", "Full Moon", "Last Quarter"}

// GenerateMock строит демонстрационный ответ на диапазон дат: на каждый день
// восход (08:30–08:59) и закат (16:00–16:30), с вероятностью ~1/3 одно
// событие из каталога, плюс до двух фаз Луны с шагом в 3 дня. Форма
// детерминирована, содержимое псевдослучайно; ответ помечен mock.
func GenerateMock(from, to time.Time, rng *rand.Rand) EventsResponse {
	resp := EventsResponse{
		OK:      true,
		Data:    []models.AstronomyEvent{},
		Moon:    []models.MoonPhase{},
		Sun:     []models.SunEvent{},
		Mock:    true,
		Message: "Demo data (live API unavailable)",
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format(dateLayout)

		resp.Sun = append(resp.Sun,
			models.SunEvent{
				Type: "Sunrise",
				Date: dateStr,
				Time: fmt.Sprintf("08:%02d:00", 30+rng.Intn(30)),
			},
			models.SunEvent{
				Type: "Sunset",
				Date: dateStr,
				Time: fmt.Sprintf("16:%02d:00", rng.Intn(31)),
			},
		)

		if rng.Intn(3) == 0 {
			entry := mockEventCatalog[rng.Intn(len(mockEventCatalog))]
			resp.Data = append(resp.Data, models.AstronomyEvent{
				Date:        dateStr,
				Time:        fmt.Sprintf("%02d:%02d:00", 18+rng.Intn(6), rng.Intn(60)),
				Type:        entry.Type,
				Description: entry.Description,
			})
		}
	}

	// Фазы Луны с шагом в 3 дня, не дальше конца диапазона
	phaseDate := from
	for i := 0; i < 2; i++ {
		if phaseDate.After(to) {
			break
		}
		resp.Moon = append(resp.Moon, models.MoonPhase{
			Phase: mockMoonPhases[rng.Intn(len(mockMoonPhases))],
			Date:  phaseDate.Format(dateLayout),
			Time:  fmt.Sprintf("%02d:%02d:00", rng.Intn(24), rng.Intn(60)),
		})
		phaseDate = phaseDate.AddDate(0, 0, 3)
	}

	return resp
}

// GenerateMockNow — вариант для границ в виде строк YYYY-MM-DD с сидом от
// текущего времени. Непарсящийся диапазон заменяется на неделю от сегодня.
func GenerateMockNow(fromDate, toDate string) EventsResponse {
	from, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		from = time.Now().UTC().Truncate(24 * time.Hour)
	}
	to, err := time.Parse(dateLayout, toDate)
	if err != nil || to.Before(from) {
		to = from.AddDate(0, 0, 7)
	}
	return GenerateMock(from, to, rand.New(rand.NewSource(time.Now().UnixNano())))
}

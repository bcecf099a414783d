package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"andromeda/internal/cache"
	"andromeda/internal/clients"
	"andromeda/internal/logger"
	"andromeda/internal/models"
)

const jwstFeedTTL = 15 * time.Minute

var imageURLRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png)(\?.*)?$`)

// FeedOptions — параметры выборки ленты JWST. Source выбирает эндпоинт
// галереи, Instrument фильтрует по списку инструментов снимка.
type FeedOptions struct {
	Source     string
	Suffix     string
	Program    string
	Instrument string
	Page       int
	PerPage    int
}

// FeedItem — нормализованный элемент ленты: валидная картинка плюс
// собранная подпись.
type FeedItem struct {
	URL         string   `json:"url"`
	Observation string   `json:"obs"`
	Program     string   `json:"program"`
	Suffix      string   `json:"suffix"`
	Instruments []string `json:"inst"`
	Caption     string   `json:"caption"`
	Link        string   `json:"link"`
}

type Feed struct {
	Source string     `json:"source"`
	Count  int        `json:"count"`
	Items  []FeedItem `json:"items"`
}

type JWSTService interface {
	GetFeed(ctx context.Context, opts FeedOptions) (Feed, error)
}

type jwstService struct {
	accessor *cache.Accessor
	client   clients.JWSTClient
}

func NewJWSTService(accessor *cache.Accessor, client clients.JWSTClient) JWSTService {
	return &jwstService{accessor: accessor, client: client}
}

func (s *jwstService) GetFeed(ctx context.Context, opts FeedOptions) (Feed, error) {
	path := feedPath(opts)
	key := fmt.Sprintf("jwst:feed:%s:%s:%d:%d", path, strings.ToUpper(opts.Instrument), opts.Page, opts.PerPage)

	var feed Feed
	err := s.accessor.GetOrCompute(ctx, key, jwstFeedTTL, &feed,
		func(ctx context.Context) (interface{}, error) {
			return s.fetchFeed(ctx, path, opts), nil
		})
	return feed, err
}

func feedPath(opts FeedOptions) string {
	path := "all/type/jpg"
	if opts.Source == "suffix" && opts.Suffix != "" {
		path = "all/suffix/" + strings.TrimLeft(opts.Suffix, "/")
	}
	if opts.Source == "program" && opts.Program != "" {
		path = "program/id/" + url.PathEscape(opts.Program)
	}
	return path
}

// fetchFeed ходит в галерею и нормализует ответ. Ошибка апстрима — пустая
// лента, виджет с картинками не должен ронять страницу.
func (s *jwstService) fetchFeed(ctx context.Context, path string, opts FeedOptions) Feed {
	feed := Feed{Source: path, Items: []FeedItem{}}

	raw, err := s.client.Get(ctx, path, map[string]string{
		"page":    fmt.Sprintf("%d", opts.Page),
		"perPage": fmt.Sprintf("%d", opts.PerPage),
	})
	if err != nil {
		logger.WithComponent("jwst").Warnf("feed fetch %s failed: %v", path, err)
		return feed
	}

	instFilter := strings.ToUpper(strings.TrimSpace(opts.Instrument))
	for _, entry := range feedList(raw) {
		item, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		normalized, ok := normalizeFeedItem(item, instFilter)
		if !ok {
			continue
		}
		feed.Items = append(feed.Items, normalized)
		if len(feed.Items) >= opts.PerPage {
			break
		}
	}

	feed.Count = len(feed.Items)
	return feed
}

// feedList достаёт список снимков: галерея отдаёт его то в body, то в data,
// то голым массивом.
func feedList(raw map[string]interface{}) []interface{} {
	for _, key := range []string{"body", "data"} {
		if list, ok := raw[key].([]interface{}); ok {
			return list
		}
	}
	if list, ok := raw["items"].([]interface{}); ok {
		return list
	}
	return nil
}

func normalizeFeedItem(item map[string]interface{}, instFilter string) (FeedItem, bool) {
	loc := models.ExtractString(item, "location", "url")
	thumb := models.ExtractString(item, "thumbnail")

	imageURL := ""
	for _, candidate := range []string{loc, thumb} {
		if candidate != "" && imageURLRe.MatchString(candidate) {
			imageURL = candidate
			break
		}
	}
	if imageURL == "" {
		imageURL = scanImageURL(item)
	}
	if imageURL == "" {
		return FeedItem{}, false
	}

	details := models.ExtractMap(item, "details")

	var instruments []string
	if rawInst, ok := details["instruments"].([]interface{}); ok {
		for _, ri := range rawInst {
			im, ok := ri.(map[string]interface{})
			if !ok {
				continue
			}
			if name := models.ExtractString(im, "instrument"); name != "" {
				instruments = append(instruments, strings.ToUpper(name))
			}
		}
	}
	if instFilter != "" && len(instruments) > 0 && !containsString(instruments, instFilter) {
		return FeedItem{}, false
	}

	obs := models.ExtractString(item, "observation_id", "observationId")
	program := models.ExtractString(item, "program")
	suffix := models.ExtractString(details, "suffix")
	if suffix == "" {
		suffix = models.ExtractString(item, "suffix")
	}

	link := loc
	if link == "" {
		link = imageURL
	}

	return FeedItem{
		URL:         imageURL,
		Observation: obs,
		Program:     program,
		Suffix:      suffix,
		Instruments: instruments,
		Caption:     buildCaption(item, program, suffix, instruments),
		Link:        link,
	}, true
}

// buildCaption собирает подпись вида "obs · Pprog · suffix · INST/INST".
func buildCaption(item map[string]interface{}, program, suffix string, instruments []string) string {
	head := models.ExtractString(item, "observation_id", "id")
	if program == "" {
		program = "-"
	}
	caption := head + " · P" + program
	if suffix != "" {
		caption += " · " + suffix
	}
	if len(instruments) > 0 {
		caption += " · " + strings.Join(instruments, "/")
	}
	return strings.TrimSpace(caption)
}

// scanImageURL — запасной поиск картинки по всем строковым полям элемента,
// включая details.
func scanImageURL(item map[string]interface{}) string {
	for _, v := range item {
		switch val := v.(type) {
		case string:
			if imageURLRe.MatchString(val) {
				return val
			}
		case map[string]interface{}:
			for _, nested := range val {
				if s, ok := nested.(string); ok && imageURLRe.MatchString(s) {
					return s
				}
			}
		}
	}
	return ""
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

package service

import (
	"context"
	"errors"
	"testing"

	"andromeda/internal/cache"
)

type fakeJWSTClient struct {
	resp     map[string]interface{}
	err      error
	lastPath string
	calls    int
}

func (f *fakeJWSTClient) Get(ctx context.Context, path string, params map[string]string) (map[string]interface{}, error) {
	f.calls++
	f.lastPath = path
	return f.resp, f.err
}

func jwstItem(fields map[string]interface{}) map[string]interface{} {
	base := map[string]interface{}{
		"observation_id": "jw02731-o001",
		"program":        "2731",
		"location":       "https://stsci-opo.org/image.jpg",
		"details": map[string]interface{}{
			"suffix": "_i2d",
			"instruments": []interface{}{
				map[string]interface{}{"instrument": "NIRCam"},
			},
		},
	}
	for k, v := range fields {
		base[k] = v
	}
	return base
}

func TestJWSTFeedPathSelection(t *testing.T) {
	tests := []struct {
		name string
		opts FeedOptions
		want string
	}{
		{"по умолчанию jpg", FeedOptions{Source: "jpg", Page: 1, PerPage: 24}, "all/type/jpg"},
		{"suffix", FeedOptions{Source: "suffix", Suffix: "_cal", Page: 1, PerPage: 24}, "all/suffix/_cal"},
		{"suffix без значения откатывается", FeedOptions{Source: "suffix", Page: 1, PerPage: 24}, "all/type/jpg"},
		{"program", FeedOptions{Source: "program", Program: "2731", Page: 1, PerPage: 24}, "program/id/2731"},
		{"ведущие слэши срезаются", FeedOptions{Source: "suffix", Suffix: "//_crf", Page: 1, PerPage: 24}, "all/suffix/_crf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := feedPath(tt.opts); got != tt.want {
				t.Errorf("feedPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJWSTFeedNormalization(t *testing.T) {
	client := &fakeJWSTClient{
		resp: map[string]interface{}{
			"body": []interface{}{
				jwstItem(nil),
				// Без картинки вовсе — выпадает
				map[string]interface{}{"observation_id": "no-image", "location": "https://x/file.fits"},
				// Картинка только в thumbnail
				jwstItem(map[string]interface{}{
					"observation_id": "thumb-only",
					"location":       "https://x/file.fits",
					"thumbnail":      "https://x/thumb.png?size=small",
				}),
			},
		},
	}
	svc := NewJWSTService(cache.NewAccessor(cache.NewMemoryStore()), client)

	feed, err := svc.GetFeed(context.Background(), FeedOptions{Source: "jpg", Page: 1, PerPage: 24})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}

	if feed.Source != "all/type/jpg" {
		t.Errorf("Source = %q", feed.Source)
	}
	if feed.Count != 2 {
		t.Fatalf("Count = %d, want 2 (элемент без картинки выпал)", feed.Count)
	}

	first := feed.Items[0]
	if first.URL != "https://stsci-opo.org/image.jpg" {
		t.Errorf("URL = %q", first.URL)
	}
	if first.Caption != "jw02731-o001 · P2731 · _i2d · NIRCAM" {
		t.Errorf("Caption = %q", first.Caption)
	}
	if first.Link != "https://stsci-opo.org/image.jpg" {
		t.Errorf("Link = %q", first.Link)
	}

	second := feed.Items[1]
	if second.URL != "https://x/thumb.png?size=small" {
		t.Errorf("thumbnail с query string должен пройти: %q", second.URL)
	}
	// link предпочитает location даже когда картинка из thumbnail
	if second.Link != "https://x/file.fits" {
		t.Errorf("Link = %q, want location", second.Link)
	}
}

func TestJWSTFeedInstrumentFilter(t *testing.T) {
	client := &fakeJWSTClient{
		resp: map[string]interface{}{
			"body": []interface{}{
				jwstItem(nil), // NIRCam
				jwstItem(map[string]interface{}{
					"observation_id": "miri-obs",
					"details": map[string]interface{}{
						"instruments": []interface{}{
							map[string]interface{}{"instrument": "MIRI"},
						},
					},
				}),
				// Без списка инструментов фильтр не применяется
				jwstItem(map[string]interface{}{
					"observation_id": "no-inst",
					"details":        map[string]interface{}{},
				}),
			},
		},
	}
	svc := NewJWSTService(cache.NewAccessor(cache.NewMemoryStore()), client)

	feed, err := svc.GetFeed(context.Background(), FeedOptions{
		Source: "jpg", Instrument: "miri", Page: 1, PerPage: 24,
	})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}

	if feed.Count != 2 {
		t.Fatalf("Count = %d, want 2", feed.Count)
	}
	if feed.Items[0].Observation != "miri-obs" || feed.Items[1].Observation != "no-inst" {
		t.Errorf("items = %+v", feed.Items)
	}
}

func TestJWSTFeedTruncatesToPerPage(t *testing.T) {
	var list []interface{}
	for i := 0; i < 10; i++ {
		list = append(list, jwstItem(nil))
	}
	client := &fakeJWSTClient{resp: map[string]interface{}{"body": list}}
	svc := NewJWSTService(cache.NewAccessor(cache.NewMemoryStore()), client)

	feed, err := svc.GetFeed(context.Background(), FeedOptions{Source: "jpg", Page: 1, PerPage: 3})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}
	if feed.Count != 3 {
		t.Errorf("Count = %d, want 3", feed.Count)
	}
}

func TestJWSTFeedUpstreamErrorDegradesToEmpty(t *testing.T) {
	client := &fakeJWSTClient{err: errors.New("gallery down")}
	svc := NewJWSTService(cache.NewAccessor(cache.NewMemoryStore()), client)

	feed, err := svc.GetFeed(context.Background(), FeedOptions{Source: "jpg", Page: 1, PerPage: 24})
	if err != nil {
		t.Fatalf("ошибка галереи не должна подниматься: %v", err)
	}
	if feed.Count != 0 || len(feed.Items) != 0 {
		t.Errorf("feed = %+v, want пустая лента", feed)
	}
}

func TestJWSTFeedAlternateListKeys(t *testing.T) {
	for _, key := range []string{"body", "data", "items"} {
		client := &fakeJWSTClient{
			resp: map[string]interface{}{key: []interface{}{jwstItem(nil)}},
		}
		svc := NewJWSTService(cache.NewAccessor(cache.NewMemoryStore()), client)

		feed, err := svc.GetFeed(context.Background(), FeedOptions{Source: "jpg", Page: 1, PerPage: 24})
		if err != nil {
			t.Fatalf("GetFeed(%s): %v", key, err)
		}
		if feed.Count != 1 {
			t.Errorf("ключ %q: Count = %d, want 1", key, feed.Count)
		}
	}
}

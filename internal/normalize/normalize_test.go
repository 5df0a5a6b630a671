package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"markettrends/internal/model"
)

func TestNormalizeGitHub(t *testing.T) {
	payload := `[{"name":"foo","html_url":"http://x/foo","stargazers_count":10,"forks":3}]`

	batch, err := Normalize(GitHub, []byte(payload), NoLimit)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(batch))

	out, err := json.Marshal(batch)
	assert.Equal(t, nil, err)
	assert.Equal(t, `[{"title":"foo","url":"http://x/foo","stars":10}]`, string(out))
}

func TestNormalizeTruncation(t *testing.T) {
	items := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		items = append(items, fmt.Sprintf(`{"title":"t%d","url":"u%d"}`, i, i))
	}
	payload := []byte("[" + strings.Join(items, ",") + "]")

	tests := []struct {
		name string
		top  int
		want int
	}{
		{name: "no limit", top: NoLimit, want: 7},
		{name: "zero", top: 0, want: 0},
		{name: "below length", top: 5, want: 5},
		{name: "equal to length", top: 7, want: 7},
		{name: "above length clamps", top: 50, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := Normalize(DevTo, payload, tt.top)
			assert.Equal(t, nil, err)
			assert.Equal(t, tt.want, len(batch))
			for i, rec := range batch {
				assert.Equal(t, fmt.Sprintf("t%d", i), rec.Title)
				assert.Equal(t, fmt.Sprintf("u%d", i), rec.URL)
			}
		})
	}
}

func TestNormalizeEmptyListIsSuccess(t *testing.T) {
	batch, err := Normalize(DevTo, []byte(` [] `), 5)
	assert.Equal(t, nil, err)
	assert.NotEqual(t, nil, batch)
	assert.Equal(t, 0, len(batch))
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `nope`},
		{name: "object instead of list", payload: `{"items":[]}`},
		{name: "item not object", payload: `[{"title":"a","url":"b"}, 3]`},
		{name: "missing url", payload: `[{"title":"a","url":"b"},{"title":"c"}]`},
		{name: "missing title", payload: `[{"url":"b"}]`},
		{name: "null title", payload: `[{"title":null,"url":"b"}]`},
		{name: "numeric url", payload: `[{"title":"a","url":7}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := Normalize(DevTo, []byte(tt.payload), NoLimit)
			assert.NotEqual(t, nil, err)
			assert.Equal(t, nil, batch)
			assert.Equal(t, true, errors.Is(err, model.ErrMalformedUpstreamPayload))

			var ue *model.UpstreamError
			assert.Equal(t, true, errors.As(err, &ue))
			assert.Equal(t, "devto", ue.Provider)
			assert.Equal(t, 0, ue.StatusCode)
		})
	}
}

func TestNormalizeOnlyValidatesKeptItems(t *testing.T) {
	payload := `[{"title":"a","url":"b"},{"title":"broken"}]`

	batch, err := Normalize(DevTo, []byte(payload), 1)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(batch))
}

func TestNormalizeMissingExtraIsSkipped(t *testing.T) {
	batch, err := Normalize(Reddit, []byte(`[{"title":"a","url":"b"},{"title":"c","url":"d","score":12}]`), NoLimit)
	assert.Equal(t, nil, err)

	assert.Equal(t, 0, len(batch[0].Extra))
	score, ok := batch[1].Extra.Get("score")
	assert.Equal(t, true, ok)
	assert.Equal(t, json.Number("12"), score)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, []int{1, 2}, Truncate([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1, 2, 3}, Truncate([]int{1, 2, 3}, 10))
	assert.Equal(t, []int{1, 2, 3}, Truncate([]int{1, 2, 3}, NoLimit))
	assert.Equal(t, 0, len(Truncate([]int{1, 2, 3}, 0)))
}

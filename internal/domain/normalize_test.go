package domain

import (
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	e := Normalize(1, 10, &RawDocument{
		Title:        "Morning",
		LastModified: 1718440200000,
	})

	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, int64(10), e.UID)
	assert.NotNil(t, e.Tags)
	assert.Len(t, e.Tags, 0)
	assert.Nil(t, e.Media)
	assert.False(t, e.Deleted)
	assert.Nil(t, e.DeletedDate)
	// missing date falls back to lastModified
	assert.Equal(t, e.LastModified, e.Date)
}

func TestNormalizeClampsLastModified(t *testing.T) {
	e := Normalize(1, 10, &RawDocument{
		Date:         1718440200000,
		LastModified: 1718440100000, // earlier than date
	})
	assert.False(t, e.LastModified.Before(e.Date))
	assert.Equal(t, e.Date, e.LastModified)
}

func TestNormalizeMedia(t *testing.T) {
	e := Normalize(1, 10, &RawDocument{
		Date:      1718440200000,
		MediaType: "image",
		MediaData: "base64payload",
	})
	require.NotNil(t, e.Media)
	assert.Equal(t, MediaKindImage, e.Media.Kind)
	assert.Equal(t, "base64payload", e.Media.Data)
	assert.True(t, e.Media.IsInline())

	// a media type with neither data nor url is dropped
	e = Normalize(1, 10, &RawDocument{Date: 1718440200000, MediaType: "image"})
	assert.Nil(t, e.Media)
}

func TestNormalizeDeletedDate(t *testing.T) {
	// deletedDate present but not deleted: ignored
	e := Normalize(1, 10, &RawDocument{
		Date:        1718440200000,
		DeletedDate: 1718450000000,
	})
	assert.Nil(t, e.DeletedDate)

	// deleted with no recorded deletion time falls back to lastModified
	e = Normalize(1, 10, &RawDocument{
		Date:         1718440200000,
		LastModified: 1718441000000,
		Deleted:      true,
	})
	require.NotNil(t, e.DeletedDate)
	assert.Equal(t, e.LastModified, *e.DeletedDate)
}

func genRawDocument() gopter.Gen {
	return gopter.CombineGens(
		gen.AlphaString(),
		gen.AlphaString(),
		gen.SliceOf(gen.AlphaString()),
		gen.Int64Range(0, 4102444800000),
		gen.Int64Range(0, 4102444800000),
		gen.Bool(),
		gen.Int64Range(0, 4102444800000),
	).Map(func(vs []interface{}) *RawDocument {
		return &RawDocument{
			Title:        vs[0].(string),
			Content:      vs[1].(string),
			Tags:         vs[2].([]string),
			Date:         vs[3].(int64),
			LastModified: vs[4].(int64),
			Deleted:      vs[5].(bool),
			DeletedDate:  vs[6].(int64),
		}
	})
}

func TestNormalizeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("deterministic", prop.ForAll(
		func(raw *RawDocument) bool {
			a := Normalize(7, 3, raw)
			b := Normalize(7, 3, raw)
			return reflect.DeepEqual(a, b)
		},
		genRawDocument(),
	))

	properties.Property("idempotent through round trip", prop.ForAll(
		func(raw *RawDocument) bool {
			once := Normalize(7, 3, raw)
			twice := Normalize(7, 3, Denormalize(once))
			return reflect.DeepEqual(once, twice)
		},
		genRawDocument(),
	))

	properties.Property("lastModified never precedes date", prop.ForAll(
		func(raw *RawDocument) bool {
			e := Normalize(7, 3, raw)
			return !e.LastModified.Before(e.Date)
		},
		genRawDocument(),
	))

	properties.Property("deletedDate set iff deleted", prop.ForAll(
		func(raw *RawDocument) bool {
			e := Normalize(7, 3, raw)
			if e.Deleted {
				return e.DeletedDate != nil
			}
			return e.DeletedDate == nil
		},
		genRawDocument(),
	))

	properties.TestingRun(t)
}

func TestDenormalizeRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)
	deleted := now.Add(time.Hour)
	e := &Entry{
		ID:           5,
		UID:          2,
		Title:        "Hike",
		Content:      "Up the hill",
		Tags:         []string{"#outdoors"},
		Media:        &Media{Kind: MediaKindAudio, URL: "audio/1718440200000_voice.mp3"},
		Date:         now,
		LastModified: now,
		Deleted:      true,
		DeletedDate:  &deleted,
	}

	got := Normalize(5, 2, Denormalize(e))
	assert.Equal(t, e, got)
}

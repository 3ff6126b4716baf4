package domain

import "time"

// RawDocument is the wire shape a stored or synced entry document arrives
// in: flat media fields, unix millisecond timestamps, optional everything.
type RawDocument struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Tags         []string `json:"tags"`
	VideoLink    string   `json:"videoLink"`
	MediaType    string   `json:"mediaType"`
	MediaData    string   `json:"mediaData"`
	MediaURL     string   `json:"mediaUrl"`
	Date         int64    `json:"date"`
	LastModified int64    `json:"lastModified"`
	Deleted      bool     `json:"deleted"`
	DeletedDate  int64    `json:"deletedDate"`
}

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Normalize converts a raw document into the canonical Entry. It is pure
// and deterministic: the same input always yields the same output, and
// normalizing an already-normalized document changes nothing.
//
// Shape guarantees:
//   - Tags is never nil
//   - the flat media fields collapse into a nested Media, nil when the
//     document has no media type
//   - LastModified never precedes Date
//   - DeletedDate is nil unless Deleted is true; a trashed document with
//     no recorded deletion time falls back to LastModified
func Normalize(id, uid int64, raw *RawDocument) *Entry {
	e := &Entry{
		ID:        id,
		UID:       uid,
		Title:     raw.Title,
		Content:   raw.Content,
		VideoLink: raw.VideoLink,
	}

	e.Tags = make([]string, len(raw.Tags))
	copy(e.Tags, raw.Tags)

	if raw.MediaType != "" && (raw.MediaData != "" || raw.MediaURL != "") {
		e.Media = &Media{
			Kind: MediaKind(raw.MediaType),
			Data: raw.MediaData,
			URL:  raw.MediaURL,
		}
	}

	dateMs := raw.Date
	if dateMs == 0 {
		dateMs = raw.LastModified
	}
	lastModifiedMs := raw.LastModified
	if lastModifiedMs < dateMs {
		lastModifiedMs = dateMs
	}
	e.Date = msToTime(dateMs)
	e.LastModified = msToTime(lastModifiedMs)

	e.Deleted = raw.Deleted
	if raw.Deleted {
		deletedMs := raw.DeletedDate
		if deletedMs == 0 {
			deletedMs = lastModifiedMs
		}
		t := msToTime(deletedMs)
		e.DeletedDate = &t
	}

	return e
}

// Denormalize flattens a canonical Entry back into the document wire shape.
// Normalize(Denormalize(e)) round-trips losslessly for canonical entries.
func Denormalize(e *Entry) *RawDocument {
	raw := &RawDocument{
		Title:        e.Title,
		Content:      e.Content,
		VideoLink:    e.VideoLink,
		Date:         e.Date.UnixMilli(),
		LastModified: e.LastModified.UnixMilli(),
		Deleted:      e.Deleted,
	}

	raw.Tags = make([]string, len(e.Tags))
	copy(raw.Tags, e.Tags)

	if e.Media != nil {
		raw.MediaType = string(e.Media.Kind)
		raw.MediaData = e.Media.Data
		raw.MediaURL = e.Media.URL
	}

	if e.Deleted && e.DeletedDate != nil {
		raw.DeletedDate = e.DeletedDate.UnixMilli()
	}

	return raw
}

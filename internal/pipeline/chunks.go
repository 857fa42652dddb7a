// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// Record kinds used in RejectedRecord and in metrics labels.
const (
	KindMovie  = "movie"
	KindUser   = "user"
	KindRating = "rating"
)

// RejectedRecord describes a chunk record that was skipped.
type RejectedRecord struct {
	Kind   string
	Key    string
	Fields []string
	Err    error
}

// UserEntry is one user of a chunk with the ratings that passed validation.
type UserEntry struct {
	ID     string
	Record models.UserRecord
}

// DecodeMovieChunk decodes a movie chunk (a JSON array of movie records).
// Records that do not decode or fail validation are returned as rejects;
// only a chunk that is not a JSON array is an error.
func DecodeMovieChunk(data []byte) ([]models.MovieRecord, []RejectedRecord, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decode movie chunk: %w", err)
	}

	movies := make([]models.MovieRecord, 0, len(raw))
	var rejected []RejectedRecord

	for i, msg := range raw {
		key := "#" + strconv.Itoa(i)
		var movie models.MovieRecord
		if err := json.Unmarshal(msg, &movie); err != nil {
			rejected = append(rejected, RejectedRecord{Kind: KindMovie, Key: key, Fields: []string{"record"}, Err: err})
			continue
		}
		if verr := validation.ValidateStruct(&movie); verr != nil {
			if movie.ItemID != "" {
				key = movie.ItemID
			}
			rejected = append(rejected, RejectedRecord{Kind: KindMovie, Key: key, Fields: verr.Fields(), Err: verr})
			continue
		}
		movies = append(movies, movie)
	}

	return movies, rejected, nil
}

// DecodeUserChunk decodes a user chunk (a JSON object keyed by user id).
// Users come back in the order they appear in the file, so segment member
// lists follow chunk order. Invalid ratings are dropped from their user and
// reported individually.
func DecodeUserChunk(data []byte) ([]UserEntry, []RejectedRecord, error) {
	ids, raw, err := decodeOrderedObject(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode user chunk: %w", err)
	}

	users := make([]UserEntry, 0, len(ids))
	var rejected []RejectedRecord

	for _, id := range ids {
		if id == "" {
			rejected = append(rejected, RejectedRecord{Kind: KindUser, Key: id, Fields: []string{"user_id"}, Err: fmt.Errorf("empty user id")})
			continue
		}
		var rec models.UserRecord
		if err := json.Unmarshal(raw[id], &rec); err != nil {
			rejected = append(rejected, RejectedRecord{Kind: KindUser, Key: id, Fields: []string{"record"}, Err: err})
			continue
		}

		valid := rec.Scores[:0]
		for _, score := range rec.Scores {
			if verr := validation.ValidateStruct(&score); verr != nil {
				rejected = append(rejected, RejectedRecord{
					Kind:   KindRating,
					Key:    id + "/" + score.ItemID,
					Fields: verr.Fields(),
					Err:    verr,
				})
				continue
			}
			valid = append(valid, score)
		}
		rec.Scores = valid

		users = append(users, UserEntry{ID: id, Record: rec})
	}

	return users, rejected, nil
}

// decodeOrderedObject reads a JSON object and returns its keys in file order
// with their raw values. A repeated key keeps its first position and its last
// value.
func decodeOrderedObject(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected an object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("value of %q: %w", key, err)
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

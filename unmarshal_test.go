package cson_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/boostmark/cson"
)

func TestUnmarshalNote(t *testing.T) {
	input := undent(`
		createdAt: "2015-09-02T00:21:24.194Z"
		updatedAt: "2017-10-20T11:01:55.000Z"
		type: "MARKDOWN_NOTE"
		folder: "5a1b2c3d4e5f"
		title: "Weekly review"
		tags: [
		    "work"
		    "urgent"
		]
		isStarred: true
		isTrashed: false
		linesHighlighted: [
		]
		content: '''
		# Weekly review
		- inbox zero
		'''
	`)

	type note struct {
		Title     string    `cson:"title"`
		Content   string    `cson:"content"`
		Folder    string    `cson:"folder"`
		Tags      []string  `cson:"tags"`
		CreatedAt time.Time `cson:"createdAt"`
		IsStarred bool      `cson:"isStarred"`
		IsTrashed bool      `cson:"isTrashed"`
	}

	got := note{}
	if err := cson.Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got.Title != "Weekly review" {
		t.Errorf("title: %q", got.Title)
	}
	if !reflect.DeepEqual(got.Tags, []string{"work", "urgent"}) {
		t.Errorf("tags: %v", got.Tags)
	}
	if want := time.Date(2015, 9, 2, 0, 21, 24, 194000000, time.UTC); !got.CreatedAt.Equal(want) {
		t.Errorf("createdAt: %v", got.CreatedAt)
	}
	if !got.IsStarred || got.IsTrashed {
		t.Errorf("flags: starred=%v trashed=%v", got.IsStarred, got.IsTrashed)
	}
	if got.Content != "\n# Weekly review\n- inbox zero\n" {
		t.Errorf("content: %q", got.Content)
	}
	// linesHighlighted has no field and is ignored.
}

func TestUnmarshalInterface(t *testing.T) {
	input := undent(`
		title: "a"
		count: 2
		nothing:
		meta: {
		    nested: true
		}
		list: [
		    1
		    "two"
		]
	`)

	var got any
	if err := cson.Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := map[string]any{
		"title":   "a",
		"count":   float64(2),
		"nothing": nil,
		"meta":    map[string]any{"nested": true},
		"list":    []any{float64(1), "two"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Mismatch:\nExpected: %#v\nGot: %#v", want, got)
	}
}

func TestUnmarshalMap(t *testing.T) {
	var got map[string]string
	if err := cson.Unmarshal([]byte("a: \"1\"\nb: \"2\""), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]string{"a": "1", "b": "2"}) {
		t.Errorf("got: %v", got)
	}
}

func TestUnmarshalFieldFallbacks(t *testing.T) {
	type target struct {
		A         string `json:"renamed"`
		B         string
		CamelCase string
	}
	got := target{}
	input := "renamed: \"1\"\nB: \"2\"\ncamel_case: \"3\""
	if err := cson.Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.A != "1" || got.B != "2" || got.CamelCase != "3" {
		t.Errorf("got: %+v", got)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		in   string
		into func() any
	}{
		{"not a pointer", "a: 1", func() any { return struct{}{} }},
		{"kind mismatch", "a: \"text\"", func() any {
			return &struct {
				A int `cson:"a"`
			}{}
		}},
		{"list into scalar", "a: [\n]", func() any {
			return &struct {
				A string `cson:"a"`
			}{}
		}},
		{"parse error surfaces", "a: nope", func() any { return &map[string]any{} }},
	} {
		t.Run(test.name, func(t *testing.T) {
			if err := cson.Unmarshal([]byte(test.in), test.into()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

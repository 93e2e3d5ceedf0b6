package intake

import (
	"errors"
	"strings"
	"testing"

	"github.com/iurcrowd/lawlinks/internal/config"
)

func TestDocumentID(t *testing.T) {
	tests := []struct {
		name    string
		event   string
		want    string
		wantErr bool
	}{
		{
			name:  "object body with number",
			event: `{"Records":[{"body":"{\"unique_id\": 4711}"}]}`,
			want:  "4711",
		},
		{
			name:  "object body with string",
			event: `{"Records":[{"body":"{\"unique_id\": \"4711\"}"}]}`,
			want:  "4711",
		},
		{
			name:  "double encoded body",
			event: `{"Records":[{"body":"\"{\\\"unique_id\\\": 4711}\""}]}`,
			want:  "4711",
		},
		{
			name:  "first record wins",
			event: `{"Records":[{"body":"{\"unique_id\": 1}"},{"body":"{\"unique_id\": 2}"}]}`,
			want:  "1",
		},
		{
			name:    "no records",
			event:   `{"Records":[]}`,
			wantErr: true,
		},
		{
			name:    "record without body",
			event:   `{"Records":[{"body":"{\"unique_id\": 1}"},{"messageId":"x"}]}`,
			wantErr: true,
		},
		{
			name:    "missing id",
			event:   `{"Records":[{"body":"{\"other\": 1}"}]}`,
			wantErr: true,
		},
		{
			name:    "body is not json",
			event:   `{"Records":[{"body":"unique_id=1"}]}`,
			wantErr: true,
		},
		{
			name:    "event is not json",
			event:   `Records`,
			wantErr: true,
		},
		{
			name:    "id is a path",
			event:   `{"Records":[{"body":"{\"unique_id\": \"../../other/lawlinks/x\"}"}]}`,
			wantErr: true,
		},
		{
			name:    "id is negative",
			event:   `{"Records":[{"body":"{\"unique_id\": -1}"}]}`,
			wantErr: true,
		},
		{
			name:    "id is fractional",
			event:   `{"Records":[{"body":"{\"unique_id\": 1.5}"}]}`,
			wantErr: true,
		},
		{
			name:    "id is an object",
			event:   `{"Records":[{"body":"{\"unique_id\": {}}"}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DocumentID([]byte(tt.event))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DocumentID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DocumentID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentIDMissingIsErrNoDocumentID(t *testing.T) {
	_, err := DocumentID([]byte(`{"Records":[{"body":"{}"}]}`))
	if !errors.Is(err, ErrNoDocumentID) {
		t.Errorf("error = %v, want ErrNoDocumentID", err)
	}
}

func TestDocumentIDRejectsNonNumericIDs(t *testing.T) {
	for _, id := range []string{`"4711a"`, `"../4711"`, `1e3`, `" 4711"`} {
		event := `{"Records":[{"body":"{\"unique_id\": ` + strings.ReplaceAll(id, `"`, `\"`) + `}"}]}`
		if _, err := DocumentID([]byte(event)); !errors.Is(err, ErrInvalidDocumentID) {
			t.Errorf("DocumentID(%s) error = %v, want ErrInvalidDocumentID", id, err)
		}
	}
}

func TestStageFromARN(t *testing.T) {
	tests := []struct {
		arn   string
		want  config.Stage
		found bool
	}{
		{"arn:aws:lambda:eu-central-1:123:function:lawlinks_dev", config.StageDev, true},
		{"arn:aws:lambda:eu-central-1:123:function:lawlinks_prod", config.StageProd, true},
		{"arn:aws:lambda:eu-central-1:123:function:lawlinks", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.arn, func(t *testing.T) {
			got, ok := StageFromARN(tt.arn)
			if got != tt.want || ok != tt.found {
				t.Errorf("StageFromARN() = %q, %v, want %q, %v", got, ok, tt.want, tt.found)
			}
		})
	}
}

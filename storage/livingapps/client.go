// Package livingapps implements record.Store against the LivingApps REST API.
package livingapps

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mnogodumalon/kurs96/core"
	"github.com/mnogodumalon/kurs96/core/record"
)

const defaultTimeout = 30 * time.Second

type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Client  *http.Client // optional override, used by tests
}

type store struct {
	base   string
	token  string
	refs   record.RefMaker
	client *http.Client
}

var _ record.Store = (*store)(nil) // interface compliance check

func NewStore(opts Options) record.Store {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	return &store{
		base:   base,
		token:  opts.Token,
		refs:   record.RefMaker{Base: base},
		client: client,
	}
}

func (s *store) List(ctx context.Context, appID string) ([]record.Record, error) {
	var recs []record.Record
	if err := s.do(ctx, http.MethodGet, s.recordsURL(appID), nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *store) Get(ctx context.Context, appID, recordID string) (record.Record, error) {
	var rec record.Record
	if err := s.do(ctx, http.MethodGet, s.refs.Ref(appID, recordID), nil, &rec); err != nil {
		return record.Record{}, err
	}
	return rec, nil
}

func (s *store) Create(ctx context.Context, appID string, fields map[string]interface{}) (record.Record, error) {
	var rec record.Record
	if err := s.do(ctx, http.MethodPost, s.recordsURL(appID), recordBody{Fields: fields}, &rec); err != nil {
		return record.Record{}, err
	}
	return rec, nil
}

func (s *store) Update(ctx context.Context, appID, recordID string, fields map[string]interface{}) error {
	return s.do(ctx, http.MethodPut, s.refs.Ref(appID, recordID), recordBody{Fields: fields}, nil)
}

func (s *store) Delete(ctx context.Context, appID, recordID string) error {
	return s.do(ctx, http.MethodDelete, s.refs.Ref(appID, recordID), nil, nil)
}

func (s *store) recordsURL(appID string) string {
	return s.base + "/rest/apps/" + appID + "/records"
}

type recordBody struct {
	Fields map[string]interface{} `json:"fields"`
}

// errorBody is the backend's error envelope. `fields` is only present on
// field-level rejections.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// do performs one backend call and maps failures onto the error taxonomy:
// 404 -> record.ErrNotFound, 400/422 -> core.ValidationError, anything else
// that goes wrong -> record.TransportError. No retries.
func (s *store) do(ctx context.Context, method, url string, body, out interface{}) error {
	op := method + " " + url

	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "encoding %s body", op)
		}
		buf = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, buf)
	if err != nil {
		return errors.Wrapf(err, "building %s request", op)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return record.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return record.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		return decodeValidationError(resp.Body)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return record.NewTransportError(op, errors.Errorf("unexpected status %s", resp.Status))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return record.NewTransportError(op, errors.Wrap(err, "decoding response"))
		}
	}
	return nil
}

func decodeValidationError(body io.Reader) error {
	var eb errorBody
	if err := json.NewDecoder(body).Decode(&eb); err != nil || eb.Error == "" && len(eb.Fields) == 0 {
		return core.NewValidationError(errors.New("request rejected by backend"))
	}
	flds := make([]core.FieldError, 0, len(eb.Fields))
	for field, msg := range eb.Fields {
		flds = append(flds, core.FieldError{Field: field, Error: msg})
	}
	var cause error
	if eb.Error != "" {
		cause = errors.New(eb.Error)
	}
	return core.NewValidationError(cause, flds...)
}

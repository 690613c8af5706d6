package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/thaidash/internal/adapters/http/api"
	"github.com/okian/thaidash/internal/adapters/repository"
	service "github.com/okian/thaidash/internal/app"
	"github.com/okian/thaidash/internal/domain/model"
	"github.com/okian/thaidash/internal/domain/pipeline"
	"github.com/okian/thaidash/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// Mock implementations for testing
type mockDependencies struct {
	analysis   *service.Analysis
	analyzeErr error
	uploaded   string
	uploadErr  error
	reloadErr  error
}

func (m *mockDependencies) Analyze(context.Context) (*service.Analysis, error) {
	if m.analyzeErr != nil {
		return nil, m.analyzeErr
	}
	return m.analysis, nil
}

func (m *mockDependencies) Export(ctx context.Context, w io.Writer, a *service.Analysis) error {
	return repository.NewCSVStore().Write(ctx, w, a.Result.Dataset)
}

func (m *mockDependencies) Upload(_ context.Context, r io.Reader) (service.LoadOutcome, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return service.LoadOutcome{}, err
	}
	if m.uploadErr != nil {
		return service.LoadOutcome{}, m.uploadErr
	}
	m.uploaded = string(b)
	return service.LoadOutcome{Source: service.OriginUpload, Rows: strings.Count(m.uploaded, "\n") - 1}, nil
}

func (m *mockDependencies) Reload(context.Context) (service.LoadOutcome, error) {
	if m.reloadErr != nil {
		return service.LoadOutcome{}, m.reloadErr
	}
	return service.LoadOutcome{Source: service.OriginFile, Rows: 4}, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

type envelope struct {
	Source    string          `json:"source"`
	Synthetic bool            `json:"synthetic"`
	Data      json.RawMessage `json:"data"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func analysis(t *testing.T, synthetic bool) *service.Analysis {
	t.Helper()
	raw := model.NewTable(
		[]string{model.ColID, model.ColEventName, model.ColTicketTypeName, model.ColTicketTypePrice,
			model.ColGender, model.ColBirthDate, model.ColRegisterDate},
		[][]string{
			{"p1", "Bangkok Marathon", "Full Marathon 42.2K", "1500", "M", "1990-05-01", "2024-01-10"},
			{"p1", "Bangkok Marathon", "Full Marathon 42.2K", "1500", "M", "1990-05-01", "2024-01-11"},
			{"p2", "Bangkok Marathon", "10K Run", "900", "F", "1985-03-03", "2024-01-10"},
			{"p3", "Trail Fest", "Trail 24K", "800", "x", "2000-01-01", "2024-05-20"},
		},
	)
	clock := func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	res, err := pipeline.New(pipeline.WithClock(clock)).Run(context.Background(), raw)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	outcome := service.LoadOutcome{Source: service.OriginFile, Rows: raw.Len()}
	if synthetic {
		outcome = service.LoadOutcome{Source: service.OriginSynthetic, Synthetic: true, Rows: raw.Len()}
	}
	return service.NewAnalysis(outcome, res, 90)
}

func newMux(deps api.Dependencies, opts ...api.Option) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, opts...)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) envelope {
	var env envelope
	So(json.NewDecoder(w.Body).Decode(&env), ShouldBeNil)
	return env
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		mux := newMux(&mockDependencies{analysis: analysis(t, false)})

		Convey("Then every read route answers GET", func() {
			for _, path := range []string{
				"/healthz", "/stats", "/kpis", "/summary", "/report", "/revenue/daily",
				"/top?column=gender", "/participants/inactive", "/participants/least-active", "/export",
			} {
				w := do(mux, http.MethodGet, path, nil)
				So(w.Code, ShouldEqual, http.StatusOK)
			}
		})

		Convey("And read routes reject other methods", func() {
			w := do(mux, http.MethodPost, "/kpis", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And unknown routes are not found", func() {
			w := do(mux, http.MethodGet, "/unknown", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestAnalyticsHandler(t *testing.T) {
	Convey("Given a server over real registrations", t, func() {
		mux := newMux(&mockDependencies{analysis: analysis(t, false)})

		Convey("When requesting KPIs", func() {
			w := do(mux, http.MethodGet, "/kpis", nil)

			Convey("Then totals come from every registration", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				So(w.Header().Get("X-Data-Source"), ShouldEqual, "file")
				env := decode(w)
				So(env.Source, ShouldEqual, "file")
				So(env.Synthetic, ShouldBeFalse)

				var k map[string]any
				So(json.Unmarshal(env.Data, &k), ShouldBeNil)
				So(k["total_registrations"], ShouldEqual, 4.0)
				So(k["total_participants"], ShouldEqual, 3.0)
				So(k["total_revenue"], ShouldEqual, 4700.0)
				So(k["top_event"], ShouldEqual, "Bangkok Marathon")
			})
		})

		Convey("When requesting the daily revenue", func() {
			w := do(mux, http.MethodGet, "/revenue/daily", nil)
			env := decode(w)
			var days []pipeline.DailyRevenue
			So(json.Unmarshal(env.Data, &days), ShouldBeNil)

			Convey("Then each registration day is listed", func() {
				So(len(days), ShouldEqual, 3)
				So(days[0].Date, ShouldEqual, "2024-01-10")
				So(days[0].Revenue, ShouldEqual, 2400.0)
			})
		})

		Convey("When requesting the run report", func() {
			w := do(mux, http.MethodGet, "/report", nil)
			env := decode(w)
			var report pipeline.Report
			So(json.Unmarshal(env.Data, &report), ShouldBeNil)

			Convey("Then it describes deduplication", func() {
				So(report.RowsIn, ShouldEqual, 4)
				So(report.RowsKept, ShouldEqual, 3)
				So(report.DuplicatesRemoved, ShouldEqual, 1)
			})
		})

		Convey("When requesting the summary", func() {
			w := do(mux, http.MethodGet, "/summary", nil)
			env := decode(w)
			var sum struct {
				Rows int `json:"rows"`
			}
			So(json.Unmarshal(env.Data, &sum), ShouldBeNil)
			So(sum.Rows, ShouldEqual, 3)
		})
	})

	Convey("Given a server over synthetic data", t, func() {
		mux := newMux(&mockDependencies{analysis: analysis(t, true)})

		Convey("Then every payload is marked synthetic", func() {
			for _, path := range []string{"/kpis", "/summary", "/top?column=eventName", "/participants/inactive"} {
				w := do(mux, http.MethodGet, path, nil)
				So(w.Code, ShouldEqual, http.StatusOK)
				env := decode(w)
				So(env.Source, ShouldEqual, "synthetic")
				So(env.Synthetic, ShouldBeTrue)
			}
		})

		Convey("And the export says so in a header", func() {
			w := do(mux, http.MethodGet, "/export", nil)
			So(w.Header().Get("X-Data-Source"), ShouldEqual, "synthetic")
		})
	})

	Convey("Given a service that is not started", t, func() {
		mux := newMux(&mockDependencies{analyzeErr: service.ErrNotStarted})

		Convey("Then analytics routes are unavailable", func() {
			w := do(mux, http.MethodGet, "/kpis", nil)
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			var body errorBody
			So(json.NewDecoder(w.Body).Decode(&body), ShouldBeNil)
			So(body.Code, ShouldEqual, "unavailable")
		})
	})

	Convey("Given an analysis that fails", t, func() {
		mux := newMux(&mockDependencies{analyzeErr: errors.New("boom")})

		Convey("Then the error is internal", func() {
			w := do(mux, http.MethodGet, "/summary", nil)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestTopHandler(t *testing.T) {
	Convey("Given a top-category endpoint capped at 5", t, func() {
		mux := newMux(&mockDependencies{analysis: analysis(t, false)}, api.WithTopN(2), api.WithMaxTopLimit(5))

		Convey("When ranking events", func() {
			w := do(mux, http.MethodGet, "/top?column=eventName&limit=1", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			env := decode(w)
			var ranked []struct {
				Label string `json:"label"`
				Count int    `json:"count"`
			}
			So(json.Unmarshal(env.Data, &ranked), ShouldBeNil)

			Convey("Then popularity counts repeat registrations", func() {
				So(len(ranked), ShouldEqual, 1)
				So(ranked[0].Label, ShouldEqual, "Bangkok Marathon")
				So(ranked[0].Count, ShouldEqual, 3)
			})
		})

		Convey("When no limit is given", func() {
			w := do(mux, http.MethodGet, "/top?column=gender", nil)
			env := decode(w)
			var ranked []json.RawMessage
			So(json.Unmarshal(env.Data, &ranked), ShouldBeNil)

			Convey("Then the default size applies", func() {
				So(len(ranked), ShouldEqual, 2)
			})
		})

		Convey("When the column is missing", func() {
			w := do(mux, http.MethodGet, "/top?limit=3", nil)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the column does not exist", func() {
			w := do(mux, http.MethodGet, "/top?column=shoeSize", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			var body errorBody
			So(json.NewDecoder(w.Body).Decode(&body), ShouldBeNil)
			So(body.Code, ShouldEqual, "unknown_column")
		})

		Convey("When the limit is not a number", func() {
			w := do(mux, http.MethodGet, "/top?column=gender&limit=abc", nil)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit is zero", func() {
			w := do(mux, http.MethodGet, "/top?column=gender&limit=0", nil)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit exceeds the cap", func() {
			w := do(mux, http.MethodGet, "/top?column=gender&limit=6", nil)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			var body errorBody
			So(json.NewDecoder(w.Body).Decode(&body), ShouldBeNil)
			So(body.Code, ShouldEqual, "limit_exceeded")
		})
	})
}

func TestParticipantsHandler(t *testing.T) {
	Convey("Given participant activity at 2024-06-01 with a 90 day threshold", t, func() {
		mux := newMux(&mockDependencies{analysis: analysis(t, false)})

		Convey("When listing inactive participants", func() {
			w := do(mux, http.MethodGet, "/participants/inactive", nil)
			env := decode(w)
			var statuses []struct {
				ID       string `json:"id"`
				Count    int    `json:"registration_count"`
				Days     *int   `json:"days_since_last"`
				Inactive bool   `json:"inactive"`
			}
			So(json.Unmarshal(env.Data, &statuses), ShouldBeNil)

			Convey("Then the most dormant come first", func() {
				So(len(statuses), ShouldEqual, 2)
				So(statuses[0].ID, ShouldEqual, "p2")
				So(statuses[1].ID, ShouldEqual, "p1")
				So(statuses[1].Count, ShouldEqual, 2)
				So(statuses[0].Inactive, ShouldBeTrue)
			})
		})

		Convey("When listing the least active with a limit", func() {
			w := do(mux, http.MethodGet, "/participants/least-active?limit=1", nil)
			env := decode(w)
			var statuses []struct {
				ID string `json:"id"`
			}
			So(json.Unmarshal(env.Data, &statuses), ShouldBeNil)

			Convey("Then single registrations come first, most dormant first", func() {
				So(len(statuses), ShouldEqual, 1)
				So(statuses[0].ID, ShouldEqual, "p2")
			})
		})

		Convey("When the limit is invalid", func() {
			w := do(mux, http.MethodGet, "/participants/inactive?limit=-1", nil)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestExportHandler(t *testing.T) {
	Convey("Given an export endpoint", t, func() {
		mux := newMux(&mockDependencies{analysis: analysis(t, false)})

		Convey("When exporting twice", func() {
			first := do(mux, http.MethodGet, "/export", nil)
			second := do(mux, http.MethodGet, "/export", nil)

			Convey("Then the CSV is identical and has one row per participant", func() {
				So(first.Code, ShouldEqual, http.StatusOK)
				So(first.Header().Get("Content-Type"), ShouldStartWith, "text/csv")
				So(first.Header().Get("Content-Disposition"), ShouldContainSubstring, "cleaned_data.csv")
				So(first.Body.String(), ShouldEqual, second.Body.String())
				lines := strings.Split(strings.TrimRight(first.Body.String(), "\n"), "\n")
				So(len(lines), ShouldEqual, 4)
				So(lines[0], ShouldStartWith, "ID,")
			})
		})
	})
}

func TestDatasetsHandler(t *testing.T) {
	const upload = "ID,eventName,ticketTypePrice\nu1,Chiang Mai Run,500\nu2,Chiang Mai Run,700\n"

	Convey("Given a datasets endpoint", t, func() {
		deps := &mockDependencies{analysis: analysis(t, false)}
		mux := newMux(deps, api.WithMaxUploadBytes(1024))

		Convey("When posting a raw CSV body", func() {
			w := do(mux, http.MethodPost, "/datasets", strings.NewReader(upload))

			Convey("Then it is handed to the service", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(deps.uploaded, ShouldEqual, upload)
				var outcome service.LoadOutcome
				So(json.NewDecoder(w.Body).Decode(&outcome), ShouldBeNil)
				So(outcome.Source, ShouldEqual, service.OriginUpload)
				So(outcome.Rows, ShouldEqual, 2)
			})
		})

		Convey("When posting a multipart form", func() {
			var body bytes.Buffer
			mw := multipart.NewWriter(&body)
			part, err := mw.CreateFormFile("file", "registrations.csv")
			So(err, ShouldBeNil)
			_, err = part.Write([]byte(upload))
			So(err, ShouldBeNil)
			So(mw.Close(), ShouldBeNil)

			req := httptest.NewRequest(http.MethodPost, "/datasets", &body)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the file field is uploaded", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(deps.uploaded, ShouldEqual, upload)
			})
		})

		Convey("When a multipart form has no file", func() {
			var body bytes.Buffer
			mw := multipart.NewWriter(&body)
			So(mw.WriteField("note", "nothing"), ShouldBeNil)
			So(mw.Close(), ShouldBeNil)

			req := httptest.NewRequest(http.MethodPost, "/datasets", &body)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the body exceeds the limit", func() {
			w := do(mux, http.MethodPost, "/datasets", strings.NewReader(strings.Repeat("x", 2048)))

			Convey("Then it is rejected as too large", func() {
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
				So(deps.uploaded, ShouldBeEmpty)
			})
		})

		Convey("When the upload is not a usable CSV", func() {
			deps.uploadErr = repository.ErrMalformed
			w := do(mux, http.MethodPost, "/datasets", strings.NewReader(upload))
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When reloading", func() {
			w := do(mux, http.MethodPost, "/datasets/reload", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			var outcome service.LoadOutcome
			So(json.NewDecoder(w.Body).Decode(&outcome), ShouldBeNil)
			So(outcome.Source, ShouldEqual, service.OriginFile)
		})

		Convey("When reloading before start", func() {
			deps.reloadErr = service.ErrNotStarted
			w := do(mux, http.MethodPost, "/datasets/reload", nil)
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("When using GET", func() {
			w := do(mux, http.MethodGet, "/datasets", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given a health handler", t, func() {
		handler := api.NewHealthHandler()

		Convey("When handling health check request", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			handler.HandleHealth(w, req)

			Convey("Then it should serve metrics", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "thaidash_")
			})
		})
	})

	Convey("Given a stats handler", t, func() {
		handler := api.NewStatsHandler(&mockStatsProvider{stats: map[string]interface{}{"started": true, "rows": 4}})

		Convey("When handling stats request", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			handler.HandleStats(w, req)

			Convey("Then it should return stats", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var stats map[string]interface{}
				So(json.NewDecoder(w.Body).Decode(&stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
				So(stats["rows"], ShouldEqual, 4.0)
			})
		})
	})
}

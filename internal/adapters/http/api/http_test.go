package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/niguel07/quizforge/internal/adapters/http/api"
	"github.com/niguel07/quizforge/internal/adapters/repository"
	"github.com/niguel07/quizforge/internal/app"
	"github.com/niguel07/quizforge/internal/domain/dataset"
	"github.com/niguel07/quizforge/internal/domain/model"
	"github.com/niguel07/quizforge/pkg/logger"
)

const testQuestions = `[
  {"id": 1, "question": "What is the capital of France?",
   "options": {"A": "London", "B": "Paris", "C": "Berlin", "D": "Madrid"},
   "answer": "B", "category": "Geography", "difficulty": "Easy",
   "explanation": "Paris.", "quality_score": 1.0, "source_topic": "geography"},
  {"id": 2, "question": "2 + 2?",
   "options": {"A": "3", "B": "4", "C": "5", "D": "6"},
   "answer": "B", "category": "Math", "difficulty": "Easy",
   "explanation": "Four.", "quality_score": 0.9, "source_topic": "math"},
  {"id": 3, "question": "Largest planet?",
   "options": {"A": "Earth", "B": "Mars", "C": "Jupiter", "D": "Venus"},
   "answer": "C", "category": "Science", "difficulty": "Medium",
   "explanation": "Jupiter.", "quality_score": 0.8, "source_topic": "astronomy"}
]`

func newTestMux(t *testing.T) (*http.ServeMux, *app.Service) {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(testQuestions), 0o600); err != nil {
		t.Fatal(err)
	}
	d, err := dataset.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	svc := app.New(
		app.WithDataset(d),
		app.WithStore(repository.NewSessionStore()),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	api.NewServer(svc).Register(context.Background(), mux)
	return mux, svc
}

func do(mux *http.ServeMux, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode(rec *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(rec.Body).Decode(v)
}

func TestSubmitEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux, _ := newTestMux(t)

		Convey("When submitting a correct then an incorrect answer", func() {
			rec := do(mux, http.MethodPost, "/api/v1/score/submit?username=Alice&question_id=1&correct=true", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			rec = do(mux, http.MethodPost, "/api/v1/score/submit?username=Alice&question_id=2&correct=false", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			Convey("Then the returned session reflects both attempts", func() {
				var sess model.Session
				So(decode(rec, &sess), ShouldBeNil)
				So(sess.Username, ShouldEqual, "Alice")
				So(sess.Score, ShouldEqual, 1)
				So(sess.TotalAttempts, ShouldEqual, 2)
				So(sess.Accuracy, ShouldEqual, 50.0)
				So(len(sess.Answers), ShouldEqual, 2)
			})
		})

		Convey("When submitting with selected_answer instead of a correct flag", func() {
			rec := do(mux, http.MethodPost, "/api/v1/score/submit?username=Bob&question_id=1&selected_answer=b", nil)

			Convey("Then correctness is graded server side", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var sess model.Session
				So(decode(rec, &sess), ShouldBeNil)
				So(sess.Score, ShouldEqual, 1)
			})
		})

		Convey("When the username is blank", func() {
			rec := do(mux, http.MethodPost, "/api/v1/score/submit?username=%20&question_id=1&correct=true", nil)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				var body map[string]string
				So(decode(rec, &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When the question does not exist", func() {
			rec := do(mux, http.MethodPost, "/api/v1/score/submit?username=Alice&question_id=999&correct=true", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When question_id is not an integer", func() {
			rec := do(mux, http.MethodPost, "/api/v1/score/submit?username=Alice&question_id=abc&correct=true", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the correct flag is malformed", func() {
			rec := do(mux, http.MethodPost, "/api/v1/score/submit?username=Alice&question_id=1&correct=maybe", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using the wrong method", func() {
			rec := do(mux, http.MethodGet, "/api/v1/score/submit?username=Alice&question_id=1&correct=true", nil)
			So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestSessionEndpoints(t *testing.T) {
	Convey("Given the API server with a recorded session", t, func() {
		mux, _ := newTestMux(t)
		do(mux, http.MethodPost, "/api/v1/score/submit?username=Alice&question_id=1&correct=true", nil)

		Convey("When fetching the session", func() {
			rec := do(mux, http.MethodGet, "/api/v1/score/Alice", nil)

			Convey("Then the session is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var sess model.Session
				So(decode(rec, &sess), ShouldBeNil)
				So(sess.Username, ShouldEqual, "Alice")
				So(sess.Score, ShouldEqual, 1)
			})
		})

		Convey("When fetching an unknown user", func() {
			rec := do(mux, http.MethodGet, "/api/v1/score/Ghost", nil)

			Convey("Then 404 is returned with a structured body", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				var body map[string]string
				So(decode(rec, &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "not_found")
			})
		})

		Convey("When deleting the session", func() {
			rec := do(mux, http.MethodDelete, "/api/v1/score/Alice", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			Convey("Then a later fetch misses", func() {
				rec = do(mux, http.MethodGet, "/api/v1/score/Alice", nil)
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When deleting an unknown user", func() {
			rec := do(mux, http.MethodDelete, "/api/v1/score/Ghost", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When listing users", func() {
			do(mux, http.MethodPost, "/api/v1/score/submit?username=Bob&question_id=1&correct=true", nil)
			rec := do(mux, http.MethodGet, "/api/v1/score/users", nil)

			Convey("Then usernames are sorted with a total", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					TotalUsers int      `json:"total_users"`
					Usernames  []string `json:"usernames"`
				}
				So(decode(rec, &body), ShouldBeNil)
				So(body.TotalUsers, ShouldEqual, 2)
				So(body.Usernames, ShouldResemble, []string{"Alice", "Bob"})
			})
		})
	})
}

func TestLeaderboardEndpoint(t *testing.T) {
	Convey("Given three users with distinct records", t, func() {
		mux, svc := newTestMux(t)
		ctx := context.Background()

		// Carol: 3/6, Bob: 2/2, Alice: 2/4.
		seed := func(username string, correct, wrong int) {
			for i := 0; i < correct; i++ {
				_, err := svc.SubmitAnswer(ctx, username, 1, true)
				So(err, ShouldBeNil)
			}
			for i := 0; i < wrong; i++ {
				_, err := svc.SubmitAnswer(ctx, username, 2, false)
				So(err, ShouldBeNil)
			}
		}
		seed("Carol", 3, 3)
		seed("Bob", 2, 0)
		seed("Alice", 2, 2)

		Convey("When fetching the leaderboard", func() {
			rec := do(mux, http.MethodGet, "/api/v1/score/leaderboard", nil)

			Convey("Then ranking is score desc, accuracy breaking ties", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					TotalUsers  int                      `json:"total_users"`
					Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
				}
				So(decode(rec, &body), ShouldBeNil)
				So(body.TotalUsers, ShouldEqual, 3)
				So(len(body.Leaderboard), ShouldEqual, 3)
				So(body.Leaderboard[0].Username, ShouldEqual, "Carol")
				So(body.Leaderboard[1].Username, ShouldEqual, "Bob")
				So(body.Leaderboard[2].Username, ShouldEqual, "Alice")
				So(body.Leaderboard[1].Accuracy, ShouldEqual, 100.0)
			})
		})

		Convey("When limiting to one entry", func() {
			rec := do(mux, http.MethodGet, "/api/v1/score/leaderboard?limit=1", nil)

			Convey("Then one entry is returned but the total stays", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					TotalUsers  int                      `json:"total_users"`
					Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
				}
				So(decode(rec, &body), ShouldBeNil)
				So(body.TotalUsers, ShouldEqual, 3)
				So(len(body.Leaderboard), ShouldEqual, 1)
			})
		})

		Convey("When the limit exceeds the maximum", func() {
			rec := do(mux, http.MethodGet, "/api/v1/score/leaderboard?limit=10000", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit is not an integer", func() {
			rec := do(mux, http.MethodGet, "/api/v1/score/leaderboard?limit=ten", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestQuestionEndpoints(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux, _ := newTestMux(t)

		Convey("When listing the question collection", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/?page=1&limit=2", nil)

			Convey("Then the first page is returned with metadata", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Items      []model.Question `json:"items"`
					Pagination dataset.PageInfo `json:"pagination"`
				}
				So(decode(rec, &body), ShouldBeNil)
				So(len(body.Items), ShouldEqual, 2)
				So(body.Pagination.TotalItems, ShouldEqual, 3)
				So(body.Pagination.TotalPages, ShouldEqual, 2)
				So(body.Pagination.HasNext, ShouldBeTrue)
			})
		})

		Convey("When requesting a later page", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/?page=2&limit=2", nil)

			Convey("Then the remainder comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Items []model.Question `json:"items"`
				}
				So(decode(rec, &body), ShouldBeNil)
				So(len(body.Items), ShouldEqual, 1)
				So(body.Items[0].ID, ShouldEqual, 3)
			})
		})

		Convey("When the page limit is out of range", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/?limit=0", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the page number is below one", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/?page=0", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When fetching a question by id", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/1", nil)

			Convey("Then the question is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var q model.Question
				So(decode(rec, &q), ShouldBeNil)
				So(q.ID, ShouldEqual, 1)
				So(q.Answer, ShouldEqual, "B")
			})
		})

		Convey("When the question id is unknown", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/999", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the question id is not numeric", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/abc", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When requesting random questions", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/random?count=2", nil)

			Convey("Then the requested number is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var qs []model.Question
				So(decode(rec, &qs), ShouldBeNil)
				So(len(qs), ShouldEqual, 2)
			})
		})

		Convey("When the random count is out of range", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/random?count=0", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When searching", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/search?q=capital", nil)

			Convey("Then matching questions are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var qs []model.Question
				So(decode(rec, &qs), ShouldBeNil)
				So(len(qs), ShouldEqual, 1)
				So(qs[0].ID, ShouldEqual, 1)
			})
		})

		Convey("When the search term is too short", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/search?q=a", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When filtering by category", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/category/geography", nil)

			Convey("Then the match is case-insensitive", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var qs []model.Question
				So(decode(rec, &qs), ShouldBeNil)
				So(len(qs), ShouldEqual, 1)
			})
		})

		Convey("When the category has no questions", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/category/History", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When filtering by difficulty", func() {
			rec := do(mux, http.MethodGet, "/api/v1/questions/difficulty/easy", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			var qs []model.Question
			So(decode(rec, &qs), ShouldBeNil)
			So(len(qs), ShouldEqual, 2)
		})

		Convey("When checking an answer", func() {
			body := strings.NewReader(`{"question_id": 1, "selected_answer": "b"}`)
			rec := do(mux, http.MethodPost, "/api/v1/questions/answer", body)

			Convey("Then grading normalizes case", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Correct       bool   `json:"correct"`
					CorrectAnswer string `json:"correct_answer"`
					Explanation   string `json:"explanation"`
				}
				So(decode(rec, &resp), ShouldBeNil)
				So(resp.Correct, ShouldBeTrue)
				So(resp.CorrectAnswer, ShouldEqual, "B")
				So(resp.Explanation, ShouldEqual, "Paris.")
			})
		})

		Convey("When the selected option is outside A-D", func() {
			body := strings.NewReader(`{"question_id": 1, "selected_answer": "X"}`)
			rec := do(mux, http.MethodPost, "/api/v1/questions/answer", body)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the answer body is not JSON", func() {
			rec := do(mux, http.MethodPost, "/api/v1/questions/answer", strings.NewReader("nope"))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestHealthAndAnalytics(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux, _ := newTestMux(t)

		Convey("When probing /healthz", func() {
			rec := do(mux, http.MethodGet, "/healthz", nil)

			Convey("Then the service reports healthy with data loaded", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Status     string `json:"status"`
					DataLoaded bool   `json:"data_loaded"`
				}
				So(decode(rec, &body), ShouldBeNil)
				So(body.Status, ShouldEqual, "healthy")
				So(body.DataLoaded, ShouldBeTrue)
			})
		})

		Convey("When fetching service info", func() {
			rec := do(mux, http.MethodGet, "/api/v1/info", nil)

			Convey("Then dataset metadata is included", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					TotalQuestions int      `json:"total_questions"`
					Categories     []string `json:"categories"`
				}
				So(decode(rec, &body), ShouldBeNil)
				So(body.TotalQuestions, ShouldEqual, 3)
				So(body.Categories, ShouldResemble, []string{"Geography", "Math", "Science"})
			})
		})

		Convey("When fetching dataset stats", func() {
			rec := do(mux, http.MethodGet, "/api/v1/stats", nil)

			Convey("Then distributions are computed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var stats dataset.Stats
				So(decode(rec, &stats), ShouldBeNil)
				So(stats.TotalQuestions, ShouldEqual, 3)
				So(stats.CategoryDistribution["Geography"], ShouldEqual, 1)
				So(stats.UniqueDifficulties, ShouldEqual, 2)
			})
		})

		Convey("When listing categories", func() {
			rec := do(mux, http.MethodGet, "/api/v1/categories", nil)

			So(rec.Code, ShouldEqual, http.StatusOK)
			var body struct {
				Count      int      `json:"count"`
				Categories []string `json:"categories"`
			}
			So(decode(rec, &body), ShouldBeNil)
			So(body.Count, ShouldEqual, 3)
		})

		Convey("When fetching the question count", func() {
			rec := do(mux, http.MethodGet, "/api/v1/count", nil)

			So(rec.Code, ShouldEqual, http.StatusOK)
			var body struct {
				TotalQuestions int `json:"total_questions"`
			}
			So(decode(rec, &body), ShouldBeNil)
			So(body.TotalQuestions, ShouldEqual, 3)
		})

		Convey("When fetching the combined summary", func() {
			rec := do(mux, http.MethodGet, "/api/v1/summary", nil)

			So(rec.Code, ShouldEqual, http.StatusOK)
			var body struct {
				Summary dataset.Stats `json:"summary"`
			}
			So(decode(rec, &body), ShouldBeNil)
			So(body.Summary.TotalQuestions, ShouldEqual, 3)
			So(body.Summary.UniqueCategories, ShouldEqual, 3)
		})

		Convey("When fetching category stats", func() {
			rec := do(mux, http.MethodGet, "/api/v1/categories/stats", nil)

			Convey("Then each category carries its share and difficulty mix", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					TotalCategories int                    `json:"total_categories"`
					Stats           []dataset.CategoryStat `json:"stats"`
				}
				So(decode(rec, &body), ShouldBeNil)
				So(body.TotalCategories, ShouldEqual, 3)
				So(body.Stats[0].Percentage, ShouldEqual, 33.33)
				So(body.Stats[0].DifficultyBreakdown, ShouldNotBeEmpty)
			})
		})

		Convey("When fetching difficulty stats", func() {
			rec := do(mux, http.MethodGet, "/api/v1/difficulty/stats", nil)

			Convey("Then levels are ordered easiest first", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					TotalLevels int                      `json:"total_levels"`
					Stats       []dataset.DifficultyStat `json:"stats"`
				}
				So(decode(rec, &body), ShouldBeNil)
				So(body.TotalLevels, ShouldEqual, 2)
				So(body.Stats[0].Level, ShouldEqual, "Easy")
				So(body.Stats[0].Count, ShouldEqual, 2)
				So(body.Stats[1].Level, ShouldEqual, "Medium")
			})
		})

		Convey("When listing topics", func() {
			rec := do(mux, http.MethodGet, "/api/v1/topics", nil)

			So(rec.Code, ShouldEqual, http.StatusOK)
			var body struct {
				Count  int      `json:"count"`
				Topics []string `json:"topics"`
			}
			So(decode(rec, &body), ShouldBeNil)
			So(body.Topics, ShouldResemble, []string{"astronomy", "geography", "math"})
		})

		Convey("When fetching service stats", func() {
			rec := do(mux, http.MethodGet, "/service/stats", nil)

			So(rec.Code, ShouldEqual, http.StatusOK)
			var body map[string]any
			So(decode(rec, &body), ShouldBeNil)
			So(body["total_sessions"], ShouldNotBeNil)
			So(body["started"], ShouldEqual, true)
		})

		Convey("When a request id is supplied", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set("X-Request-ID", "abc-123")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it is echoed back", func() {
				So(rec.Header().Get("X-Request-ID"), ShouldEqual, "abc-123")
			})
		})
	})
}

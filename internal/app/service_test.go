package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/niguel07/quizforge/internal/adapters/repository"
	"github.com/niguel07/quizforge/internal/app"
	"github.com/niguel07/quizforge/internal/domain/dataset"
	"github.com/niguel07/quizforge/internal/domain/scoring"
	"github.com/niguel07/quizforge/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const testQuestions = `[
  {"id": 1, "question": "What is the capital of France?",
   "options": {"A": "London", "B": "Paris", "C": "Berlin", "D": "Madrid"},
   "answer": "B", "category": "Geography", "difficulty": "Easy",
   "explanation": "Paris.", "quality_score": 1.0, "source_topic": "geography"},
  {"id": 2, "question": "2 + 2?",
   "options": {"A": "3", "B": "4", "C": "5", "D": "6"},
   "answer": "B", "category": "Math", "difficulty": "Easy",
   "explanation": "Four.", "quality_score": 0.9, "source_topic": "math"}
]`

func newTestService(t *testing.T, opts ...app.Option) *app.Service {
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

	opts = append([]app.Option{
		app.WithDataset(d),
		app.WithStore(repository.NewSessionStore()),
	}, opts...)
	svc := app.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestServiceSubmitAnswer(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newTestService(t)

		Convey("When submitting a valid answer", func() {
			sess, err := svc.SubmitAnswer(ctx, "Alice", 1, true)

			Convey("Then the session is updated", func() {
				So(err, ShouldBeNil)
				So(sess.Score, ShouldEqual, 1)
				So(sess.TotalAttempts, ShouldEqual, 1)
			})
		})

		Convey("When submitting with a blank username", func() {
			_, err := svc.SubmitAnswer(ctx, "   ", 1, true)

			Convey("Then it is rejected", func() {
				So(errors.Is(err, app.ErrEmptyUsername), ShouldBeTrue)
			})
		})

		Convey("When submitting against an unknown question", func() {
			_, err := svc.SubmitAnswer(ctx, "Alice", 99, true)

			Convey("Then the dataset lookup fails", func() {
				So(errors.Is(err, dataset.ErrQuestionNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestServiceLeaderboard(t *testing.T) {
	Convey("Given a service with three users", t, func() {
		ctx := context.Background()
		svc := newTestService(t, app.WithMaxLeaderboardLimit(5), app.WithDefaultLeaderboardLimit(2))

		for _, user := range []string{"Alice", "Bob", "Carol"} {
			_, err := svc.SubmitAnswer(ctx, user, 1, true)
			So(err, ShouldBeNil)
		}

		Convey("When querying without a limit", func() {
			entries, total, err := svc.Leaderboard(ctx, 0)

			Convey("Then the default limit applies and the total is full", func() {
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, 2)
				So(total, ShouldEqual, 3)
			})
		})

		Convey("When exceeding the maximum limit", func() {
			_, _, err := svc.Leaderboard(ctx, 6)

			Convey("Then it is rejected", func() {
				So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
			})
		})

		Convey("When resetting a user", func() {
			So(svc.ResetSession(ctx, "Alice"), ShouldBeNil)

			Convey("Then the user is gone from all views", func() {
				So(svc.Usernames(ctx), ShouldResemble, []string{"Bob", "Carol"})
				_, err := svc.UserSession(ctx, "Alice")
				So(errors.Is(err, repository.ErrSessionNotFound), ShouldBeTrue)
			})
		})

		Convey("When resetting an unknown user", func() {
			err := svc.ResetSession(ctx, "Nobody")

			Convey("Then it reports not found", func() {
				So(errors.Is(err, repository.ErrSessionNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestServiceValidateAnswer(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newTestService(t)

		Convey("When validating the right option", func() {
			correct, q, err := svc.ValidateAnswer(ctx, 1, "b")

			Convey("Then it grades against the dataset", func() {
				So(err, ShouldBeNil)
				So(correct, ShouldBeTrue)
				So(q.ID, ShouldEqual, 1)
			})
		})

		Convey("When validating the wrong option", func() {
			correct, _, err := svc.ValidateAnswer(ctx, 1, "A")
			So(err, ShouldBeNil)
			So(correct, ShouldBeFalse)
		})

		Convey("When the option is malformed", func() {
			_, _, err := svc.ValidateAnswer(ctx, 1, "X")
			So(errors.Is(err, scoring.ErrInvalidOption), ShouldBeTrue)
		})

		Convey("When the question is unknown", func() {
			_, _, err := svc.ValidateAnswer(ctx, 99, "A")
			So(errors.Is(err, dataset.ErrQuestionNotFound), ShouldBeTrue)
		})
	})
}

func TestServiceStats(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newTestService(t)
		_, err := svc.SubmitAnswer(ctx, "Alice", 1, true)
		So(err, ShouldBeNil)

		Convey("When fetching stats", func() {
			stats := svc.GetStats()

			Convey("Then counts are reported", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["total_questions"], ShouldEqual, 2)
				So(stats["total_sessions"], ShouldEqual, 1)
			})
		})
	})
}

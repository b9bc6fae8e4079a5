package workflows

import (
	"context"
	"errors"
	"testing"

	"bookflow/internal/activities"
	"bookflow/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func TestBookProcessWorkflowSuccess(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(BookProcessWorkflow)
	registerActivityName(env, "ComputeBookIDActivity", func(context.Context, activities.ComputeBookIDInput) (activities.ComputeBookIDOutput, error) {
		return activities.ComputeBookIDOutput{}, nil
	})
	registerActivityName(env, "UpdateBookStatusActivity", func(context.Context, activities.UpdateBookStatusInput) error { return nil })
	registerActivityName(env, "ExtractTextActivity", func(context.Context, activities.ExtractTextInput) (activities.ExtractTextOutput, error) {
		return activities.ExtractTextOutput{}, nil
	})
	registerActivityName(env, "ProcessTextActivity", func(context.Context, activities.ProcessTextInput) (activities.ProcessTextOutput, error) {
		return activities.ProcessTextOutput{}, nil
	})
	registerActivityName(env, "LogSummaryCallActivity", func(context.Context, activities.LogSummaryCallInput) error { return nil })
	registerActivityName(env, "SaveBookActivity", func(context.Context, activities.SaveBookInput) error { return nil })
	registerActivityName(env, "WriteBookArtifactsActivity", func(context.Context, activities.WriteBookArtifactsInput) error { return nil })

	env.OnActivity("ComputeBookIDActivity", mock.Anything, activities.ComputeBookIDInput{BookPath: "/tmp/b.txt"}).Return(activities.ComputeBookIDOutput{BookID: "book123"}, nil)
	env.OnActivity("UpdateBookStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("ExtractTextActivity", mock.Anything, activities.ExtractTextInput{BookPath: "/tmp/b.txt"}).Return(activities.ExtractTextOutput{Text: "Mon Livre\nMarie Laurent\nle corps du texte", PageCount: 3, Title: "Mon Livre", Author: "Marie Laurent"}, nil)
	env.OnActivity("ProcessTextActivity", mock.Anything, mock.Anything).Return(activities.ProcessTextOutput{
		Sections:      []models.Section{{ID: 1, Title: "Section 1", Content: "le corps du texte"}},
		Stats:         models.TextStats{WordCount: 8, DetectedLanguage: "fr"},
		Keywords:      []string{"texte"},
		Sentiment:     models.Sentiment{Label: "neutral", Confidence: 0.5},
		Summary:       "un résumé",
		SummarySource: "extractive",
	}, nil)
	env.OnActivity("LogSummaryCallActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("SaveBookActivity", mock.Anything, mock.MatchedBy(func(in activities.SaveBookInput) bool {
		return in.Book.BookID == "book123" &&
			in.Book.Status == "processed" &&
			in.Book.Summary == "un résumé" &&
			in.Book.Progress.CurrentPage == 1
	})).Return(nil)
	env.OnActivity("WriteBookArtifactsActivity", mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(BookProcessWorkflow, BookProcessInput{ShelfID: "s", BookPath: "/tmp/b.txt"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "processed", out)
}

func TestBookProcessWorkflowNoTextFailsGracefully(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(BookProcessWorkflow)
	registerActivityName(env, "ComputeBookIDActivity", func(context.Context, activities.ComputeBookIDInput) (activities.ComputeBookIDOutput, error) {
		return activities.ComputeBookIDOutput{}, nil
	})
	registerActivityName(env, "UpdateBookStatusActivity", func(context.Context, activities.UpdateBookStatusInput) error { return nil })
	registerActivityName(env, "ExtractTextActivity", func(context.Context, activities.ExtractTextInput) (activities.ExtractTextOutput, error) {
		return activities.ExtractTextOutput{}, nil
	})

	env.OnActivity("ComputeBookIDActivity", mock.Anything, mock.Anything).Return(activities.ComputeBookIDOutput{BookID: "book123"}, nil)
	env.OnActivity("UpdateBookStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("ExtractTextActivity", mock.Anything, mock.Anything).Return(activities.ExtractTextOutput{}, errors.New("no extractable text found in file"))

	env.ExecuteWorkflow(BookProcessWorkflow, BookProcessInput{ShelfID: "s", BookPath: "/tmp/b.pdf"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)
}

func TestBookProcessWorkflowTooShortFailsGracefully(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(BookProcessWorkflow)
	registerActivityName(env, "ComputeBookIDActivity", func(context.Context, activities.ComputeBookIDInput) (activities.ComputeBookIDOutput, error) {
		return activities.ComputeBookIDOutput{}, nil
	})
	registerActivityName(env, "UpdateBookStatusActivity", func(context.Context, activities.UpdateBookStatusInput) error { return nil })
	registerActivityName(env, "ExtractTextActivity", func(context.Context, activities.ExtractTextInput) (activities.ExtractTextOutput, error) {
		return activities.ExtractTextOutput{}, nil
	})

	env.OnActivity("ComputeBookIDActivity", mock.Anything, mock.Anything).Return(activities.ComputeBookIDOutput{BookID: "book456"}, nil)
	env.OnActivity("UpdateBookStatusActivity", mock.Anything, mock.MatchedBy(func(in activities.UpdateBookStatusInput) bool {
		return in.Status != "failed" || in.FailReason != ""
	})).Return(nil)
	env.OnActivity("ExtractTextActivity", mock.Anything, mock.Anything).Return(activities.ExtractTextOutput{}, errors.New("extracted text below minimum readable length: 42 chars"))

	env.ExecuteWorkflow(BookProcessWorkflow, BookProcessInput{ShelfID: "s", BookPath: "/tmp/tiny.txt"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)
}

package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.ListUploadsActivity)
	w.RegisterActivity(a.ComputeBookIDActivity)
	w.RegisterActivity(a.ExtractTextActivity)
	w.RegisterActivity(a.ProcessTextActivity)
	w.RegisterActivity(a.SaveBookActivity)
	w.RegisterActivity(a.UpdateBookStatusActivity)
	w.RegisterActivity(a.WriteBookArtifactsActivity)
	w.RegisterActivity(a.WriteShelfSummaryActivity)
	w.RegisterActivity(a.LogSummaryCallActivity)
	w.RegisterActivity(a.ListFailedBooksActivity)
}

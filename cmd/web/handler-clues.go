package main

import (
	"net/http"
)

type clueListTemplateData struct {
	BaseTemplateData
	Title   string
	Clues   []clueView
	Stats   clueStats
	Filters clueFilters
	// ShowFilters hides the filter bar on the worklist, which is already a
	// fixed slice of the collection.
	ShowFilters bool
}

func (app *application) clueList(w http.ResponseWriter, r *http.Request) {
	clues, err := app.clues.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	query := r.URL.Query()
	filters := clueFilters{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
		Status:    query.Get("status"),
		Source:    query.Get("source"),
		Location:  query.Get("location"),
	}

	views := filters.apply(newClueViews(clues, app.now()))
	data := clueListTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Title:            "All clues",
		Clues:            views,
		Stats:            newClueStats(views),
		Filters:          filters,
		ShowFilters:      true,
	}

	// Filter submissions over htmx swap only the table, full page loads
	// render the whole layout.
	h := app.htmx.NewHandler(w, r)
	if h.IsHxRequest() {
		app.renderPartial(w, r, http.StatusOK, "clues", "clue-table", data)
		return
	}

	app.render(w, r, http.StatusOK, "clues", data)
}

// clueWorklist lists the clues that are due within the urgency window or
// already overdue.
func (app *application) clueWorklist(w http.ResponseWriter, r *http.Request) {
	clues, err := app.clues.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	views := make([]clueView, 0, len(clues))
	today := app.now()
	for _, clue := range clues {
		view := newClueView(clue, today)
		if view.DaysLeft <= 2 {
			views = append(views, view)
		}
	}

	data := clueListTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Title:            "Worklist",
		Clues:            views,
		Stats:            newClueStats(views),
		Filters:          clueFilters{},
		ShowFilters:      false,
	}

	app.render(w, r, http.StatusOK, "clues", data)
}

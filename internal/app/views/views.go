package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/planner"
	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/render"
	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Static holds the stylesheet served under /assets.
//
//go:embed static/*
var Static embed.FS

var templates = template.Must(template.New("views").Funcs(template.FuncMap{
	"cx":    func(classes ...string) string { return twmerge.Merge(strings.Join(classes, " ")) },
	"label": render.Label,
}).ParseFS(templateFS, "templates/*.html"))

// Option is one entry of a select box.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// PlannerView is everything the planner templates read.
type PlannerView struct {
	State   planner.State
	Result  *render.Result
	Summary string
	Budgets []Option
	People  []Option
	// PollEvery is the htmx polling interval used while a plan is generating.
	PollEvery string
}

func NewPlannerView(state planner.State) PlannerView {
	budgets := make([]Option, 0, len(models.Budgets))
	for _, b := range models.Budgets {
		budgets = append(budgets, Option{Value: string(b), Label: render.Label(string(b)), Selected: b == state.Budget})
	}
	people := make([]Option, 0, len(models.PartyTypes))
	for _, p := range models.PartyTypes {
		people = append(people, Option{Value: string(p), Label: string(p), Selected: p == state.People})
	}
	return PlannerView{
		State:     state,
		Result:    render.RenderOutcome(state.Plan, state.Phase == planner.PhaseFailed),
		Summary:   render.Summarize(state.Request()),
		Budgets:   budgets,
		People:    people,
		PollEvery: "1s",
	}
}

// Layout wraps content in the HTML document shell.
func Layout(l models.Layout) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := templates.ExecuteTemplate(w, "layout_open", l); err != nil {
			return err
		}
		if l.Content != nil {
			if err := l.Content.Render(ctx, w); err != nil {
				return err
			}
		}
		return templates.ExecuteTemplate(w, "layout_close", l)
	})
}

// Planner is the form together with its suggestions and results.
func Planner(v PlannerView) templ.Component {
	return templ.FromGoHTML(templates.Lookup("planner"), v)
}

// Suggestions is the list under the location input.
func Suggestions(v PlannerView) templ.Component {
	return templ.FromGoHTML(templates.Lookup("suggestions"), v)
}

// Results is the plan section, which polls while a generation is running.
func Results(v PlannerView) templ.Component {
	return templ.FromGoHTML(templates.Lookup("results"), v)
}

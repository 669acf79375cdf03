// Package view builds the description of one page render. Render is a pure
// function of the navigation selection and the records fetched for this
// request; the HTTP layer owns everything else.
package view

import (
	"strconv"

	"github.com/rogerio-castellano/inventory-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/report"
	"github.com/rogerio-castellano/inventory-dashboard/internal/session"
)

type Page string

const (
	PageDashboard Page = "dashboard"
	PageCreate    Page = "create"
	PageEdit      Page = "edit"
)

var navigation = []struct {
	page  Page
	label string
}{
	{PageDashboard, "General dashboard"},
	{PageCreate, "Register item"},
	{PageEdit, "Edit/Delete"},
}

// ParsePage maps the page query value onto a branch. Anything unknown falls
// back to the dashboard.
func ParsePage(s string) Page {
	switch Page(s) {
	case PageCreate, PageEdit:
		return Page(s)
	default:
		return PageDashboard
	}
}

type NavItem struct {
	Page   Page
	Label  string
	Active bool
}

type MetricCard struct {
	Label string
	Value string
}

type TableRow struct {
	Name      string
	Category  string
	Quantity  int
	UnitPrice string
}

type DashboardView struct {
	Empty       bool
	Summary     dashboard.Summary
	Metrics     []MetricCard
	Bar         dashboard.Figure
	Donut       dashboard.Figure
	Rows        []TableRow
	ExportURL   string
	ExportLabel string
}

type CreateForm struct {
	Categories      []string
	DefaultCategory string
	Quantity        int
	UnitPrice       string
}

type EditForm struct {
	Empty     bool
	Options   []string
	Selected  models.Product
	UnitPrice string
}

type View struct {
	Title     string
	Page      Page
	Nav       []NavItem
	Flashes   []session.Flash
	Dashboard *DashboardView
	Create    *CreateForm
	Edit      *EditForm
}

type Input struct {
	Page           Page
	Products       []models.Product
	Selected       string
	Flashes        []session.Flash
	CurrencySymbol string
}

// Render produces exactly one of the three branches for in.Page.
func Render(in Input) View {
	v := View{
		Title:   "Inventory Management",
		Page:    in.Page,
		Flashes: in.Flashes,
	}
	for _, n := range navigation {
		v.Nav = append(v.Nav, NavItem{Page: n.page, Label: n.label, Active: n.page == in.Page})
	}

	switch in.Page {
	case PageCreate:
		v.Create = renderCreate()
	case PageEdit:
		v.Edit = renderEdit(in.Products, in.Selected)
	default:
		v.Page = PageDashboard
		v.Nav[0].Active = true
		v.Dashboard = renderDashboard(in.Products, in.CurrencySymbol)
	}
	return v
}

func renderDashboard(products []models.Product, currency string) *DashboardView {
	s := dashboard.Summarize(products)
	d := &DashboardView{Empty: s.Empty, Summary: s}
	if s.Empty {
		return d
	}

	d.Metrics = []MetricCard{
		{Label: "Total items", Value: strconv.Itoa(s.TotalQuantity)},
		{Label: "Accumulated value", Value: dashboard.FormatCurrency(currency, s.TotalValue)},
		{Label: "Active categories", Value: strconv.Itoa(s.CategoryCount)},
	}
	d.Bar = dashboard.BarChart(s.TopProducts)
	d.Donut = dashboard.DonutChart(s.CategoryTotals)

	d.Rows = make([]TableRow, len(products))
	for i, p := range products {
		d.Rows[i] = TableRow{
			Name:      p.Name,
			Category:  p.Category,
			Quantity:  p.Quantity,
			UnitPrice: formatPrice(p.UnitPrice),
		}
	}
	d.ExportURL = "/export.csv"
	d.ExportLabel = "Download report as CSV (" + report.Filename + ")"
	return d
}

func renderCreate() *CreateForm {
	f := &CreateForm{UnitPrice: formatPrice(0)}
	for _, c := range models.Categories() {
		f.Categories = append(f.Categories, string(c))
	}
	f.DefaultCategory = f.Categories[0]
	return f
}

// renderEdit selects the requested record, or the first one in store order
// when the request names none or a record that no longer exists.
func renderEdit(products []models.Product, selected string) *EditForm {
	f := &EditForm{Empty: len(products) == 0}
	if f.Empty {
		return f
	}

	f.Selected = products[0]
	for _, p := range products {
		f.Options = append(f.Options, p.Name)
		if p.Name == selected {
			f.Selected = p
		}
	}
	f.UnitPrice = formatPrice(f.Selected.UnitPrice)
	return f
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

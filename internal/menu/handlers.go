package menu

import (
	"context"

	"github.com/gp-wales/internal/practice"
)

func (m *Menu) chart(path string, err error) {
	if err != nil {
		m.printer.Error(err)
		return
	}
	m.printer.Chart(path)
}

func (m *Menu) showTopDrugs(ctx context.Context, p *practice.Practice) (Action, error) {
	drugs, err := m.svc.TopDrugs(ctx, p.ID)
	if err != nil {
		return Continue, err
	}
	m.printer.TopDrugs(p.ID, drugs)
	m.chart(m.charts.TopDrugs(p.ID, drugs))
	return Continue, nil
}

func (m *Menu) showCategories(ctx context.Context, p *practice.Practice) (Action, error) {
	cats, err := m.svc.Categories(ctx, p.ID)
	if err != nil {
		return Continue, err
	}
	m.printer.Categories(p.ID, cats)
	m.chart(m.charts.Categories(p.ID, cats))
	return Continue, nil
}

func (m *Menu) showSize(ctx context.Context, p *practice.Practice) (Action, error) {
	res, err := m.svc.Size(ctx, p.ID)
	if err != nil {
		return Continue, err
	}
	m.printer.Size(res)
	return Continue, nil
}

func (m *Menu) showRates(ctx context.Context, p *practice.Practice) (Action, error) {
	rates, err := m.svc.Rates(ctx, p.ID)
	if err != nil {
		return Continue, err
	}
	m.printer.Rates(p.ID, rates)
	return Continue, nil
}

func (m *Menu) showCentile(ctx context.Context, p *practice.Practice) (Action, error) {
	res, err := m.svc.CHDCentile(ctx, p.ID)
	if err != nil {
		return Continue, err
	}
	m.printer.Centile(p.ID, res)
	return Continue, nil
}

func (m *Menu) showCounties(ctx context.Context) (Action, error) {
	rep, err := m.svc.CountyAggregation(ctx)
	if err != nil {
		return Continue, err
	}
	m.printer.Counties(rep)
	m.chart(m.charts.Counties(rep))
	return Continue, nil
}

func (m *Menu) showClusters(ctx context.Context, p *practice.Practice) (Action, error) {
	res, err := m.svc.Clusters(ctx, p.ID)
	if err != nil {
		return Continue, err
	}
	m.printer.Clusters(p.ID, res)
	m.chart(m.charts.Clusters(p.ID, res))
	return Continue, nil
}

func (m *Menu) showCorrelation(ctx context.Context) (Action, error) {
	res, err := m.svc.Correlation(ctx)
	if err != nil {
		return Continue, err
	}
	m.printer.Correlation(res)
	return Continue, nil
}

package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/service"
)

type fakePlanRepo struct {
	listed []*model.PlanWithClient
}

func (f *fakePlanRepo) Create(_ context.Context, req *model.CreateMarketingPlanRequest) (*model.MarketingPlan, error) {
	return &model.MarketingPlan{ID: "plan-1", ClientID: req.ClientID, Title: req.Title}, nil
}

func (f *fakePlanRepo) GetByID(_ context.Context, id string) (*model.MarketingPlan, error) {
	return &model.MarketingPlan{ID: id}, nil
}

func (f *fakePlanRepo) List(context.Context, int, int) ([]*model.PlanWithClient, error) {
	return f.listed, nil
}

func (f *fakePlanRepo) ListByClient(context.Context, string, int, int) ([]*model.MarketingPlan, error) {
	return []*model.MarketingPlan{}, nil
}

func (f *fakePlanRepo) Update(_ context.Context, id string, _ model.UpdateMarketingPlanRequest) (*model.MarketingPlan, error) {
	return &model.MarketingPlan{ID: id}, nil
}

func (f *fakePlanRepo) Delete(context.Context, string) (bool, error) {
	return true, nil
}

func TestPlanList_JoinsClientName(t *testing.T) {
	repo := &fakePlanRepo{
		listed: []*model.PlanWithClient{
			{
				MarketingPlan: model.MarketingPlan{
					ID:        "plan-2",
					ClientID:  "client-1",
					Title:     "Q4 Awareness Campaign",
					Status:    model.MarketingPlanStatusActive,
					CreatedAt: time.Now(),
				},
				ClientName: "Acme Outdoor Co",
			},
			{
				MarketingPlan: model.MarketingPlan{
					ID:       "plan-1",
					ClientID: "client-2",
					Title:    "Launch Teaser",
					Status:   model.MarketingPlanStatusDraft,
				},
				ClientName: "Blue Harbor Cafe",
			},
		},
	}
	handler := NewPlanHandler(PlanHandlerOptions{Plans: service.NewPlanService(repo)})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/plans", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		ClientName string `json:"client_name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "plan-2", got[0].ID)
	assert.Equal(t, "Acme Outdoor Co", got[0].ClientName)
	assert.Equal(t, "Blue Harbor Cafe", got[1].ClientName)
}

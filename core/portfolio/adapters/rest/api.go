// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rest

import (
	"context"
	"net/http"

	"portfolio/core/portfolio/domain"
	"portfolio/modules/db"
)

// Service is the subset of the application the HTTP layer drives.
type Service interface {
	GetAboutInfo(ctx context.Context) (*domain.AboutInfo, error)
	GetAllWorks(ctx context.Context, filter domain.WorkFilter) ([]domain.Work, error)
	GetWorkByID(ctx context.Context, id string) (*domain.Work, error)
	GetSkillCategories(ctx context.Context, category *string) ([]domain.SkillCategory, error)
	GetSkillCategoryNames(ctx context.Context) ([]string, error)
	GetHeroIntroduction(ctx context.Context) (*domain.HeroIntroduction, error)
	GetTimelineItems(ctx context.Context) ([]domain.TimelineItem, error)
	SubmitContact(ctx context.Context, req domain.ContactRequest) (*domain.ContactReceipt, error)
}

var _ Service = (*domain.Application)(nil)

type Handler struct {
	svc    Service
	health db.HealthManager
}

func NewHandler(svc Service, health db.HealthManager) *Handler {
	return &Handler{svc: svc, health: health}
}

// Routes returns the API mux with paths relative to the mount prefix.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Welcome)
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /works", h.ListWorks)
	mux.HandleFunc("GET /works/{id}", h.GetWork)
	mux.HandleFunc("GET /skills", h.ListSkills)
	mux.HandleFunc("GET /skills/categories", h.ListSkillCategories)
	mux.HandleFunc("GET /about", h.GetAbout)
	mux.HandleFunc("GET /hero/introduction", h.GetHeroIntroduction)
	mux.HandleFunc("GET /hero/timeline", h.GetTimeline)
	mux.HandleFunc("POST /contact", h.SubmitContact)
	return mux
}

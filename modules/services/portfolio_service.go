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
package services

import (
	"io/fs"
	"net/http"
	"strings"

	"portfolio/core/portfolio/adapters/rest"
	"portfolio/modules/server"
)

var _ server.RegistrableService = (*PortfolioAPIService)(nil)

// PortfolioAPIService mounts the portfolio routes, behind request validation,
// under an optional path prefix.
type PortfolioAPIService struct {
	prefix   string
	specPath string
	specFS   fs.FS
	handler  *rest.Handler
}

// NewPortfolioAPIService normalizes prefix to "" or "/segment" without a
// trailing slash.
func NewPortfolioAPIService(h *rest.Handler, specFS fs.FS, specPath, prefix string) *PortfolioAPIService {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return &PortfolioAPIService{prefix: prefix, specFS: specFS, specPath: specPath, handler: h}
}

func (s *PortfolioAPIService) Register(mux *http.ServeMux) {
	api := rest.ValidationMiddleware(s.specFS, s.specPath)(s.handler.Routes())

	mux.HandleFunc("GET "+s.prefix+"/openapi.yaml", s.serveSpec)
	if s.prefix == "" {
		mux.Handle("/", api)
		return
	}
	mux.Handle(s.prefix+"/", http.StripPrefix(s.prefix, api))
}

// Middlewares returns middlewares the portfolio API needs around the whole mux.
func (s *PortfolioAPIService) Middlewares() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		rest.RecoverHTTPMiddleware(),
	}
}

func (s *PortfolioAPIService) serveSpec(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(s.specFS, s.specPath)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(data)
}

// HealthPath is the absolute path of the health endpoint.
func (s *PortfolioAPIService) HealthPath() string {
	return s.prefix + "/healthz"
}

// Package oapi embeds the OpenAPI documents served and enforced at runtime.
package oapi

import "embed"

//go:embed *.yaml
var FS embed.FS

const PortfolioSpec = "openapi-portfolio.yaml"

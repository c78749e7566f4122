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
package telemetry

import "time"

type Protocol string

const (
	ProtocolHTTP Protocol = "http/protobuf"
	ProtocolGRPC Protocol = "grpc"
)

type Config struct {
	// Disabled turns Init into a no-op; global providers stay the OTel no-op ones.
	Disabled bool `env:"OTEL_SDK_DISABLED" envDefault:"true"`

	ServiceName    string `env:"OTEL_SERVICE_NAME" envDefault:"portfolio-api"`
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"dev"`
	Environment    string `env:"ENVIRONMENT" envDefault:"local"`

	// Either a full URL ("http://otel-collector:4318/v1/traces") or host:port.
	// Empty leaves endpoint resolution to the exporter's own OTEL_EXPORTER_OTLP_* lookup.
	OTLPEndpoint string   `env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
	Insecure     bool     `env:"OTEL_EXPORTER_OTLP_TRACES_INSECURE"`
	Protocol     Protocol `env:"OTEL_EXPORTER_OTLP_PROTOCOL" envDefault:"http/protobuf"`

	// 0..1: 0 never samples, 1 always does, anything between is parent based.
	SamplerRatio float64 `env:"OTEL_TRACES_SAMPLER_RATIO" envDefault:"1"`

	StartupTimeout time.Duration `env:"OTEL_STARTUP_TIMEOUT" envDefault:"5s"`
	DisableMetrics bool          `env:"OTEL_METRICS_DISABLED" envDefault:"false"`

	ResourceAttrs map[string]string `env:"OTEL_RESOURCE_ATTRIBUTES" envSeparator:"," envKeyValSeparator:"="`
}

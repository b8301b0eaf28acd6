package app

import (
	"overlayns/internal/adapters"
	"overlayns/internal/core"
	"overlayns/internal/ports"
)

type Service struct {
	Manifests    ports.ManifestPort
	Registry     ports.NamespaceRegistryPort
	ReportWriter ports.ReportWriterPort
	ReportReader ports.ReportReaderPort
	Compiler     core.ManifestCompiler
}

func NewService() Service {
	reports := adapters.NewReportFileAdapter()
	return Service{
		Manifests:    adapters.NewManifestFileAdapter(),
		Registry:     adapters.NewNamespaceRegistryAdapter(),
		ReportWriter: reports,
		ReportReader: reports,
		Compiler:     core.NewManifestCompiler(),
	}
}

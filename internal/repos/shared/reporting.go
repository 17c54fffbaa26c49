package shared

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Reporter emits formatted executor events to an underlying sink.
type Reporter interface {
	Printf(format string, args ...any)
}

type writerReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer, defaulting to standard output.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return writerReporter{writer: writer}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	fmt.Fprintf(reporter.writer, format, args...)
}

// DiagnosticKind classifies non-fatal findings produced during reconciliation.
type DiagnosticKind string

const (
	// DiagnosticExtraRemote marks a local remote that is not declared.
	DiagnosticExtraRemote DiagnosticKind = "extra-remote"

	// DiagnosticRepositoryNotFound marks a declared sub-repository that was not discovered.
	DiagnosticRepositoryNotFound DiagnosticKind = "repository-not-found"

	// DiagnosticRepositoryNotConfigured marks a discovered sub-repository that is not declared.
	DiagnosticRepositoryNotConfigured DiagnosticKind = "repository-not-configured"

	// DiagnosticSubmoduleUnavailable marks a registered submodule that could not be opened.
	DiagnosticSubmoduleUnavailable DiagnosticKind = "submodule-unavailable"

	// DiagnosticRepositoryUnavailable marks a scanned repository root that could not be opened.
	DiagnosticRepositoryUnavailable DiagnosticKind = "repository-unavailable"
)

const (
	diagnosticWriterTemplateConstant      = "warning: %s\n"
	diagnosticWriterPathTemplateConstant  = "warning: [%s] %s\n"
	diagnosticLogMessageConstant          = "reconciliation diagnostic"
	diagnosticLogFieldKindConstant        = "diagnostic_kind"
	diagnosticLogFieldRepositoryConstant  = "repository_path"
	diagnosticLogFieldSubjectConstant     = "subject"
	diagnosticLogFieldDescriptionConstant = "description"
	extraRemoteMessageTemplateConstant    = "remote '%s' exists locally but not in config"
	notFoundMessageTemplateConstant       = "sub-repository '%s' is configured but was not found"
	notConfiguredMessageTemplateConstant  = "sub-repository '%s' was found but is not configured"
	submoduleUnavailableTemplateConstant  = "submodule '%s' could not be opened: %v"
	repositoryUnavailableTemplateConstant = "repository '%s' could not be opened: %v"
)

// Diagnostic is a single non-fatal finding.
type Diagnostic struct {
	Kind           DiagnosticKind
	RepositoryPath string
	Subject        string
	Message        string
}

// NewExtraRemoteDiagnostic describes a remote present locally but absent from the declaration.
func NewExtraRemoteDiagnostic(repositoryPath string, remoteName string) Diagnostic {
	return Diagnostic{
		Kind:           DiagnosticExtraRemote,
		RepositoryPath: repositoryPath,
		Subject:        remoteName,
		Message:        fmt.Sprintf(extraRemoteMessageTemplateConstant, remoteName),
	}
}

// NewRepositoryNotFoundDiagnostic describes a declared sub-repository missing on disk.
func NewRepositoryNotFoundDiagnostic(repositoryPath string, childPath string) Diagnostic {
	return Diagnostic{
		Kind:           DiagnosticRepositoryNotFound,
		RepositoryPath: repositoryPath,
		Subject:        childPath,
		Message:        fmt.Sprintf(notFoundMessageTemplateConstant, childPath),
	}
}

// NewRepositoryNotConfiguredDiagnostic describes a discovered sub-repository with no declaration.
func NewRepositoryNotConfiguredDiagnostic(repositoryPath string, childPath string) Diagnostic {
	return Diagnostic{
		Kind:           DiagnosticRepositoryNotConfigured,
		RepositoryPath: repositoryPath,
		Subject:        childPath,
		Message:        fmt.Sprintf(notConfiguredMessageTemplateConstant, childPath),
	}
}

// NewSubmoduleUnavailableDiagnostic describes a registered submodule that failed to open.
func NewSubmoduleUnavailableDiagnostic(repositoryPath string, childPath string, cause error) Diagnostic {
	return Diagnostic{
		Kind:           DiagnosticSubmoduleUnavailable,
		RepositoryPath: repositoryPath,
		Subject:        childPath,
		Message:        fmt.Sprintf(submoduleUnavailableTemplateConstant, childPath, cause),
	}
}

// NewRepositoryUnavailableDiagnostic describes a scanned repository root that failed to open.
func NewRepositoryUnavailableDiagnostic(repositoryPath string, childPath string, cause error) Diagnostic {
	return Diagnostic{
		Kind:           DiagnosticRepositoryUnavailable,
		RepositoryPath: repositoryPath,
		Subject:        childPath,
		Message:        fmt.Sprintf(repositoryUnavailableTemplateConstant, childPath, cause),
	}
}

// DiagnosticReporter receives non-fatal findings.
type DiagnosticReporter interface {
	Report(diagnostic Diagnostic)
}

type writerDiagnosticReporter struct {
	writer io.Writer
}

// NewWriterDiagnosticReporter renders diagnostics as warning lines, defaulting to standard error.
func NewWriterDiagnosticReporter(writer io.Writer) DiagnosticReporter {
	if writer == nil {
		writer = os.Stderr
	}
	return writerDiagnosticReporter{writer: writer}
}

func (reporter writerDiagnosticReporter) Report(diagnostic Diagnostic) {
	repositoryPath := strings.TrimSpace(diagnostic.RepositoryPath)
	if len(repositoryPath) == 0 {
		fmt.Fprintf(reporter.writer, diagnosticWriterTemplateConstant, diagnostic.Message)
		return
	}
	fmt.Fprintf(reporter.writer, diagnosticWriterPathTemplateConstant, repositoryPath, diagnostic.Message)
}

type loggerDiagnosticReporter struct {
	logger *zap.Logger
}

// NewLoggerDiagnosticReporter records diagnostics at debug level.
func NewLoggerDiagnosticReporter(logger *zap.Logger) DiagnosticReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return loggerDiagnosticReporter{logger: logger}
}

func (reporter loggerDiagnosticReporter) Report(diagnostic Diagnostic) {
	reporter.logger.Debug(
		diagnosticLogMessageConstant,
		zap.String(diagnosticLogFieldKindConstant, string(diagnostic.Kind)),
		zap.String(diagnosticLogFieldRepositoryConstant, diagnostic.RepositoryPath),
		zap.String(diagnosticLogFieldSubjectConstant, diagnostic.Subject),
		zap.String(diagnosticLogFieldDescriptionConstant, diagnostic.Message),
	)
}

type multiDiagnosticReporter struct {
	reporters []DiagnosticReporter
}

// NewMultiDiagnosticReporter fans diagnostics out to every non-nil reporter.
func NewMultiDiagnosticReporter(reporters ...DiagnosticReporter) DiagnosticReporter {
	activeReporters := make([]DiagnosticReporter, 0, len(reporters))
	for _, reporter := range reporters {
		if reporter != nil {
			activeReporters = append(activeReporters, reporter)
		}
	}
	return multiDiagnosticReporter{reporters: activeReporters}
}

func (reporter multiDiagnosticReporter) Report(diagnostic Diagnostic) {
	for _, target := range reporter.reporters {
		target.Report(diagnostic)
	}
}

// CollectingDiagnosticReporter retains every diagnostic in arrival order.
type CollectingDiagnosticReporter struct {
	mutex       sync.Mutex
	diagnostics []Diagnostic
}

// Report records the diagnostic.
func (reporter *CollectingDiagnosticReporter) Report(diagnostic Diagnostic) {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()
	reporter.diagnostics = append(reporter.diagnostics, diagnostic)
}

// Diagnostics returns a copy of the recorded diagnostics.
func (reporter *CollectingDiagnosticReporter) Diagnostics() []Diagnostic {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()
	return append([]Diagnostic(nil), reporter.diagnostics...)
}

// Kinds returns the kinds of the recorded diagnostics in arrival order.
func (reporter *CollectingDiagnosticReporter) Kinds() []DiagnosticKind {
	diagnostics := reporter.Diagnostics()
	kinds := make([]DiagnosticKind, 0, len(diagnostics))
	for _, diagnostic := range diagnostics {
		kinds = append(kinds, diagnostic.Kind)
	}
	return kinds
}

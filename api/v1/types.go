// Package v1 holds the wire-level types exchanged with external
// collaborators: plugin package descriptors consumed from a plugin store and
// the workflow result records produced for downstream consumers.
//
// Only a subset of the descriptor fields is interpreted by this module
// (package/function ids, names and descriptions); everything else travels
// through untouched for the collaborators that own it.
package v1

import "time"

// PluginFunction describes one host function as published by a plugin store.
// It carries metadata only; the executable body is resolved by the host out
// of band, keyed by FunctionID.
type PluginFunction struct {
	FunctionID   string   `json:"function_id" yaml:"function_id"`
	FunctionName string   `json:"function_name" yaml:"function_name"`
	Description  string   `json:"description" yaml:"description"`
	Permissions  []string `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// PluginPackage describes a published group of plugin functions.
type PluginPackage struct {
	PackageID      string           `json:"package_id" yaml:"package_id"`
	PackageName    string           `json:"package_name" yaml:"package_name"`
	PackageVersion string           `json:"package_version,omitempty" yaml:"package_version,omitempty"`
	Description    string           `json:"description,omitempty" yaml:"description,omitempty"`
	Functions      []PluginFunction `json:"functions" yaml:"functions"`
	PluginStoreURL string           `json:"plugin_store_url,omitempty" yaml:"plugin_store_url,omitempty"`
	Verified       *bool            `json:"verified,omitempty" yaml:"verified,omitempty"`
	Deprecated     *bool            `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	InstalledAt    *time.Time       `json:"installed_at,omitempty" yaml:"installed_at,omitempty"`
	UpdatedAt      *time.Time       `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// WorkflowCode is the wire form of a versioned workflow script.
type WorkflowCode struct {
	ID           string `json:"id" yaml:"id"`
	Code         string `json:"code" yaml:"code"`
	CodeRevision int32  `json:"code_revision" yaml:"code_revision"`
}

// WorkflowResultType classifies the outcome of one workflow run.
type WorkflowResultType int32

const (
	WorkflowResultSuccessUnspecified WorkflowResultType = 0
	WorkflowResultFailure            WorkflowResultType = 1
)

// WorkflowResult is one immutable record of a single workflow execution. The
// field set and the id/revision derivation rules are part of the external
// contract and must not change shape.
type WorkflowResult struct {
	ID                     string             `json:"id"`
	DisplayName            string             `json:"display_name"`
	Description            string             `json:"description"`
	Result                 string             `json:"result"`
	RanAt                  time.Time          `json:"ran_at"`
	ResultType             WorkflowResultType `json:"result_type"`
	ExitCode               int32              `json:"exit_code"`
	WorkflowResultRevision int32              `json:"workflow_result_revision"`
}

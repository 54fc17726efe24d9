package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/repoenv/internal/execshell"
)

const (
	gitRemoteSubcommandConstant       = "remote"
	gitRemoteGetURLSubcommandConstant = "get-url"
	originRemoteNameConstant          = "origin"
	executorRequiredMessageConstant   = "git executor is required"
)

// ErrGitExecutorRequired indicates the resolver was constructed without an executor.
var ErrGitExecutorRequired = errors.New(executorRequiredMessageConstant)

// GitExecutor abstracts git command execution for remote inspection.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RemoteResolver reads and parses the origin remote of the current working directory.
type RemoteResolver struct {
	executor GitExecutor
}

// NewRemoteResolver constructs a RemoteResolver backed by the provided executor.
func NewRemoteResolver(executor GitExecutor) (*RemoteResolver, error) {
	if executor == nil {
		return nil, ErrGitExecutorRequired
	}
	return &RemoteResolver{executor: executor}, nil
}

// ResolveOriginRemote returns the structured origin remote of the working directory.
func (resolver *RemoteResolver) ResolveOriginRemote(executionContext context.Context) (RemoteURL, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, originRemoteNameConstant},
	}

	executionResult, executionError := resolver.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return RemoteURL{}, executionError
	}

	return ParseRemoteURL(strings.TrimSpace(executionResult.StandardOutput))
}

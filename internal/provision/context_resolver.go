package provision

import (
	"context"
	"errors"

	"github.com/temirov/repoenv/internal/githubcli"
	"github.com/temirov/repoenv/internal/gitrepo"
)

const contextUnavailableMessageConstant = "repository context unavailable"

// ErrContextUnavailable indicates no source could supply the repository context.
var ErrContextUnavailable = errors.New(contextUnavailableMessageConstant)

// GitHubContextSource resolves the repository backing the working directory through the GitHub CLI.
type GitHubContextSource interface {
	ResolveCurrentRepository(executionContext context.Context) (githubcli.RepositoryContext, error)
}

// GitRemoteSource resolves the origin remote of the working directory.
type GitRemoteSource interface {
	ResolveOriginRemote(executionContext context.Context) (gitrepo.RemoteURL, error)
}

// CompositeContextResolver queries the GitHub CLI first and falls back to
// parsing the origin remote. Both sources are read-only and best-effort.
type CompositeContextResolver struct {
	GitHubSource GitHubContextSource
	GitSource    GitRemoteSource
}

// ResolveContext returns the ambient repository owner and name.
func (resolver *CompositeContextResolver) ResolveContext(executionContext context.Context) (githubcli.RepositoryContext, error) {
	if resolver.GitHubSource != nil {
		repositoryContext, resolutionError := resolver.GitHubSource.ResolveCurrentRepository(executionContext)
		if resolutionError == nil && len(repositoryContext.Name) > 0 && len(repositoryContext.OwnerLogin) > 0 {
			return repositoryContext, nil
		}
	}

	if resolver.GitSource != nil {
		remoteURL, remoteError := resolver.GitSource.ResolveOriginRemote(executionContext)
		if remoteError == nil {
			return githubcli.RepositoryContext{Name: remoteURL.Repository, OwnerLogin: remoteURL.Owner}, nil
		}
	}

	return githubcli.RepositoryContext{}, ErrContextUnavailable
}

// Package registry resolves a workspace's declared dependencies (crate
// name + version constraint) to content-addressed graph.CrateIDs,
// fetching manifests from an OCI registry. Grounded on
// cuelang.org/go/mod/modregistry's Client/RegistryLocation/Resolver
// shape (NewClient wrapping an ociregistry.Interface, GetModule
// resolving a module+version to registry content), adapted from CUE
// module manifests to bare crate name/version tags since this source
// language has no equivalent of CUE's module.cue file format.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cuelabs.dev/go/oci/ociregistry"
	digest "github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"golang.org/x/mod/semver"

	"orbitlang.org/go/internal/graph"
)

// ErrNotFound is returned when no version of a crate satisfies a
// constraint, or the crate has no configured registry entry at all.
var ErrNotFound = fmt.Errorf("registry: crate not found")

// ErrNotAManifest is returned when a tag resolves to something other
// than an OCI image manifest, mirroring modregistry's isModule check
// against the fetched descriptor's media type.
var ErrNotAManifest = errors.New("registry: tag does not resolve to an OCI manifest")

// Client resolves crate name/version pairs against a single OCI
// registry, the way modregistry.Client resolves module versions.
type Client struct {
	registry   ociregistry.Interface
	repository func(crateName string) string
}

// NewClient returns a Client backed by registry. repoFn maps a crate
// name to the repository path inside that registry; callers with a
// single flat namespace can pass a func that returns its argument
// unchanged.
func NewClient(registry ociregistry.Interface, repoFn func(crateName string) string) *Client {
	return &Client{registry: registry, repository: repoFn}
}

// Resolve picks the highest available version of crateName satisfying
// minVersion (a semver string; empty means "any"), fetches its
// manifest, and returns a graph.CrateID content-addressed by the
// manifest's digest.
func (c *Client) Resolve(ctx context.Context, crateName, minVersion string) (graph.CrateID, error) {
	repo := c.repository(crateName)

	tags, err := c.listTags(ctx, repo)
	if err != nil {
		return graph.CrateID{}, fmt.Errorf("registry: listing tags for %s: %w", crateName, err)
	}

	best := bestVersion(tags, minVersion)
	if best == "" {
		return graph.CrateID{}, fmt.Errorf("%w: %s %s", ErrNotFound, crateName, minVersion)
	}

	rd, err := c.registry.GetTag(ctx, repo, best)
	if err != nil {
		return graph.CrateID{}, fmt.Errorf("registry: resolving %s@%s: %w", crateName, best, err)
	}
	defer rd.Close()

	desc := rd.Descriptor()
	if desc.MediaType != ocispec.MediaTypeImageManifest {
		return graph.CrateID{}, fmt.Errorf("%w: %s@%s has media type %q", ErrNotAManifest, crateName, best, desc.MediaType)
	}

	return graph.CrateID{Digest: desc.Digest.String()}, nil
}

// listTags drains the registry's callback-based tag iterator
// (Tags(ctx, repo, startAfter) returns a func(yield) walker, not a
// slice) into a plain []string.
func (c *Client) listTags(ctx context.Context, repo string) ([]string, error) {
	var tags []string
	var iterErr error
	iter := c.registry.Tags(ctx, repo, "")
	iter(func(tag string, err error) bool {
		if err != nil {
			iterErr = err
			return false
		}
		tags = append(tags, tag)
		return true
	})
	if iterErr != nil {
		return nil, iterErr
	}
	return tags, nil
}

// bestVersion returns the highest tag that is valid semver and >=
// minVersion (when minVersion is non-empty), using
// golang.org/x/mod/semver.Compare for ordering exactly as CUE's module
// resolution does.
func bestVersion(tags []string, minVersion string) string {
	var candidates []string
	for _, t := range tags {
		if semver.IsValid(t) {
			candidates = append(candidates, t)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return semver.Compare(candidates[i], candidates[j]) < 0
	})

	best := ""
	for _, v := range candidates {
		if minVersion != "" && semver.Compare(v, minVersion) < 0 {
			continue
		}
		best = v
	}
	return best
}

// VerifyDigest checks that content hashes to want, the same check
// modregistry runs after a fetch before trusting module content.
func VerifyDigest(content []byte, want string) error {
	d, err := digest.Parse(want)
	if err != nil {
		return fmt.Errorf("registry: invalid digest %q: %w", want, err)
	}
	if err := d.Validate(); err != nil {
		return err
	}
	verifier := d.Verifier()
	if _, err := verifier.Write(content); err != nil {
		return err
	}
	if !verifier.Verified() {
		return errors.New("registry: content does not match digest")
	}
	return nil
}

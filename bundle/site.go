package bundle

import (
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
)

// SiteEntry is the archive entry holding the bundle metadata
const SiteEntry = "site.bson"

// ErrMissingSite is returned when a bundle has no site metadata entry
var ErrMissingSite = errors.New("bundle is missing " + SiteEntry)

// SiteMetadata represents the identity of a bundle or of a spliced site
type SiteMetadata struct {
	Project string `bson:"project" yaml:"project"`
	Branch  string `bson:"branch" yaml:"branch"`
}

// Namespace returns project/branch
func (s *SiteMetadata) Namespace() string {
	return s.Project + "/" + s.Branch
}

// Validate checks that both project and branch are set
func (s *SiteMetadata) Validate() error {
	if s.Project == "" {
		return fmt.Errorf("site project was empty")
	}
	if s.Branch == "" {
		return fmt.Errorf("site branch was empty")
	}
	return nil
}

// Encode encodes the site record
func (s *SiteMetadata) Encode() ([]byte, error) {
	return bson.Marshal(s)
}

// DecodeSiteMetadata decodes and validates a site record
func DecodeSiteMetadata(data []byte) (*SiteMetadata, error) {
	ret := &SiteMetadata{}
	if err := bson.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode %v: %w", SiteEntry, err)
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %v: %w", SiteEntry, err)
	}
	return ret, nil
}

// NewSiteMetadata creates site metadata
func NewSiteMetadata(project, branch string) *SiteMetadata {
	return &SiteMetadata{Project: project, Branch: branch}
}

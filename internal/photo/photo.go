// Package photo models Unsplash photos and provides a client for the
// Unsplash API.
package photo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Photo is a photo as returned by the Unsplash API.
type Photo struct {
	ID             string  `json:"id"`
	CreatedAt      string  `json:"created_at,omitempty"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Color          string  `json:"color,omitempty"`
	BlurHash       string  `json:"blur_hash,omitempty"`
	Description    *string `json:"description"`
	AltDescription *string `json:"alt_description"`
	URLs           URLs    `json:"urls"`
	Links          Links   `json:"links"`
	Likes          int     `json:"likes"`
	User           *User   `json:"user,omitempty"`
	Tags           []Tag   `json:"tags,omitempty"`
}

// URLs are the renditions of a photo.
type URLs struct {
	Raw     string `json:"raw,omitempty"`
	Full    string `json:"full,omitempty"`
	Regular string `json:"regular,omitempty"`
	Small   string `json:"small,omitempty"`
	Thumb   string `json:"thumb,omitempty"`
}

// Links are the API and web links of a photo.
type Links struct {
	Self             string `json:"self,omitempty"`
	HTML             string `json:"html,omitempty"`
	Download         string `json:"download,omitempty"`
	DownloadLocation string `json:"download_location,omitempty"`
}

// User is the photographer.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Tag is a photo tag. The API sends objects; locally curated pools may use
// plain strings. Both decode into a Tag whose Label is the tag text.
type Tag struct {
	Type  string `json:"type,omitempty"`
	Title string `json:"title"`
}

// UnmarshalJSON accepts either "label" or {"type": ..., "title": "label"}.
func (t *Tag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Tag{Title: s}
		return nil
	}

	type plain Tag
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("tag must be a string or an object: %w", err)
	}
	*t = Tag(p)
	return nil
}

// Label returns the normalised tag text.
func (t Tag) Label() string {
	return t.Title
}

// Labels returns the non-empty tag labels of p in order, duplicates kept.
func (p *Photo) Labels() []string {
	labels := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if l := t.Label(); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// Username returns the photographer's username, or "" when unknown.
func (p *Photo) Username() string {
	if p.User == nil {
		return ""
	}
	return p.User.Username
}

// Title returns a human-readable title for p.
func (p *Photo) Title() string {
	switch {
	case p.Description != nil && *p.Description != "":
		return *p.Description
	case p.AltDescription != nil && *p.AltDescription != "":
		return *p.AltDescription
	case p.User != nil && p.User.Name != "":
		return p.User.Name
	default:
		return "Untitled"
	}
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

package domain

import "encoding/json"

// ContentType selects which prompt templates and output schema apply to a
// generation run. The set is open: new types are added by registering a
// definition in the generation registry, never by modifying existing
// dispatch code.
type ContentType string

const (
	ContentTypeVideoScript   ContentType = "video_script"
	ContentTypeLinkedInPost  ContentType = "linkedin_post"
	ContentTypeTwitterThread ContentType = "twitter_thread"
	ContentTypeEmailCopy     ContentType = "email_copy"
	ContentTypeRedditPost    ContentType = "reddit_post"
	ContentTypeAdCopy        ContentType = "ad_copy"
)

// String returns the string representation of the content type.
func (t ContentType) String() string { return string(t) }

// DraftedContent is the final structured artifact produced by the drafting
// stage from exactly one selected concept. It is owned by the run that
// created it and never mutated afterwards.
type DraftedContent struct {
	// Type is the content type the artifact conforms to.
	Type ContentType `json:"content_type"`

	// Raw is the schema-validated JSON document returned by the model.
	Raw json.RawMessage `json:"content"`
}

// Text flattens the artifact to an indented JSON string for judging.
func (d DraftedContent) Text() string {
	var buf map[string]any
	if err := json.Unmarshal(d.Raw, &buf); err != nil {
		return string(d.Raw)
	}
	out, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return string(d.Raw)
	}
	return string(out)
}

// Decode unmarshals the artifact into a concrete schema type, e.g.
// *VideoScript for ContentTypeVideoScript.
func (d DraftedContent) Decode(out any) error {
	return json.Unmarshal(d.Raw, out)
}

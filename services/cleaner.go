package services

import (
	"strings"
	"unicode"

	"foodfindr/models"
	"foodfindr/utils"
)

// Cleaner normalises scraped restaurants and drops records that cannot be
// keyed: an empty link or a link that was already emitted.
type Cleaner struct {
	logger *utils.Logger
	seen   *utils.LinkSet
	kept   int
	drop   int
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger, seen: utils.NewLinkSet()}
}

// Admit trims r's link and reports whether the record is worth enriching:
// false for an empty link or one admitted before.
func (c *Cleaner) Admit(r *models.Restaurant) bool {
	r.Link = strings.TrimSpace(r.Link)
	if r.Link == "" {
		c.logger.Warn("[cleaner] Dropping restaurant with empty link: %s", r.Name)
		c.drop++
		return false
	}

	if !c.seen.Add(r.Link) {
		c.logger.Debug("[cleaner] Duplicate link skipped: %s", r.Link)
		c.drop++
		return false
	}
	return true
}

// Normalise tidies the text fields of an admitted record in place.
func (c *Cleaner) Normalise(r *models.Restaurant) {
	r.Name = normaliseText(r.Name)
	r.Address = normaliseText(r.Address)
	r.Price = strings.TrimSpace(r.Price)

	tags := r.Tags[:0]
	for _, tag := range r.Tags {
		if tag = normaliseText(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	r.Tags = tags

	c.kept++
}

// Stats returns how many records were kept and dropped so far.
func (c *Cleaner) Stats() (kept, dropped int) {
	return c.kept, c.drop
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

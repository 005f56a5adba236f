package deckbox

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"deckbox-api/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// position of each field among the profile's definition list
const (
	profileUsername = iota
	profileLocation
	profileBio
	profileLastSeen
	profileFeedback
	profileWillTrade
)

// upstream renders the timestamp as an argument of an inline date helper
var lastSeenRegex = regexp.MustCompile(`, (\d+), `)

func parseLastSeen(text string, loc *time.Location) (LastSeenOnline, error) {
	match := lastSeenRegex.FindStringSubmatch(text)
	if match == nil {
		return LastSeenOnline{}, &ExtractionError{Field: "last_seen_online"}
	}
	ts, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return LastSeenOnline{}, &ExtractionError{Field: "last_seen_online", Err: err}
	}
	return newLastSeenOnline(ts, loc), nil
}

// rawText keeps script contents and whitespace, for pattern matching.
func rawText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return htmlutil.GetText(sel.Get(0))
}

// resolveLink makes relative links absolute against the page they came from.
func resolveLink(doc *goquery.Document, raw string) string {
	if raw == "" || doc.Url == nil {
		return raw
	}
	link, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return doc.Url.ResolveReference(link).String()
}

func ExtractProfile(doc *goquery.Document, loc *time.Location) (UserProfile, error) {
	section := doc.Find("#section_profile").First()
	if section.Length() == 0 {
		return UserProfile{}, &ExtractionError{Field: "profile", Err: errors.New("profile section not found")}
	}

	fields := section.Find("dd")
	field := func(i int) string {
		return htmlutil.Text(fields.Eq(i))
	}

	profile := UserProfile{
		Username:  field(profileUsername),
		Location:  field(profileLocation),
		Bio:       field(profileBio),
		Feedback:  field(profileFeedback),
		WillTrade: field(profileWillTrade),
	}
	if profile.Username == "" {
		return UserProfile{}, &ExtractionError{Field: "username"}
	}

	lastSeen, err := parseLastSeen(rawText(fields.Eq(profileLastSeen)), loc)
	if err != nil {
		return UserProfile{}, fmt.Errorf("profile %s: %w", profile.Username, err)
	}
	profile.LastSeenOnline = lastSeen

	src, _ := htmlutil.Attr(section.Find("img.profile_image").First(), "src")
	profile.Image = resolveLink(doc, src)

	return profile, nil
}

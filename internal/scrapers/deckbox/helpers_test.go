package deckbox

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

var est = time.FixedZone("EST", -5*60*60)

func parseDoc(t testing.TB, link, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	if link != "" {
		doc.Url, err = url.Parse(link)
		require.NoError(t, err)
	}
	return doc
}

// pageFetcher serves canned pages by url path and records every url asked for.
type pageFetcher struct {
	t     testing.TB
	pages map[string]string

	mutex     sync.Mutex
	requested []string
}

func (f *pageFetcher) Fetch(_ context.Context, link string) (*goquery.Document, error) {
	f.mutex.Lock()
	f.requested = append(f.requested, link)
	f.mutex.Unlock()

	parsed, err := url.Parse(link)
	require.NoError(f.t, err)
	body, ok := f.pages[parsed.EscapedPath()]
	if !ok {
		return nil, &FetchError{URL: link, StatusCode: 404}
	}
	return parseDoc(f.t, link, body), nil
}

func (f *pageFetcher) Requested() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]string(nil), f.requested...)
}

const profilePage = `<html><body>
<div id="section_profile">
  <img class="profile_image" src="/system/images/avatars/42.jpg">
  <dl>
    <dt>Username</dt><dd>john_doe</dd>
    <dt>Location</dt><dd> Bucharest,  Romania </dd>
    <dt>Bio</dt><dd>Collector of old frames.</dd>
    <dt>Last seen</dt><dd><script>document.write(timeAgo(new Date(), 1390885219, 'ago'))</script></dd>
    <dt>Feedback</dt><dd>100% positive</dd>
    <dt>Will trade</dt><dd>Only in person</dd>
  </dl>
</div>
<div id="section_mtg">
  <div class="submenu_entry"><a href="/sets/100">Inventory (120)</a></div>
  <div class="submenu_entry"><a href="/sets/101">Tradelist (3)</a></div>
  <div class="submenu_entry"><a href="/sets/102">Wishlist (0)</a></div>
  <div class="submenu_entry"><a href="/sets/200">Modern Burn</a></div>
  <div class="submenu_entry"><a href="/sets/201">Binder</a></div>
</div>
</body></html>`

const collectionPage = `<html><body>
<div id="set_cards_table">
  <div class="pagination_controls"><span>Page 2 of 7</span><div class="results_count">340 cards</div></div>
  <table id="set_cards_table_details">
    <tr><th>Count</th><th>Name</th></tr>
    <tr id="c1">
      <td class="card_count">4</td>
      <td class="card_name"><a href="/mtg/Lightning Bolt">Lightning Bolt</a>
        <img class="foil_icon" src="/images/foil.png">
        <img class="signed_icon" src="/images/signed.png">
      </td>
      <td class="edition"><img src="/images/mtg/editions/m10_c.jpg" data-title="Magic 2010"></td>
      <td><img class="condition_icon" alt="NM" title="Near Mint"><img class="lang_flag" alt="en" title="English"></td>
    </tr>
    <tr id="c2">
      <td class="card_count">1</td>
      <td class="card_name"><a href="/mtg/Counterspell">Counterspell</a></td>
      <td class="edition"><img src="/images/mtg/editions/lea_u.jpg" title="Alpha"></td>
    </tr>
  </table>
</div>
</body></html>`

const searchPage = `<html><body>
<div class="pagination_controls"><span>1 / 3</span></div>
<table class="set_cards">
  <tr><th>Name</th></tr>
  <tr id="r1">
    <td class="card_name"><a href="/mtg/Llanowar Elves">Llanowar Elves</a></td>
    <td class="card_type">Creature — Elf Druid</td>
    <td class="card_cost"><img alt="{G}"></td>
  </tr>
  <tr id="r2">
    <td class="card_name"><a href="/mtg/Centaur Courser">Centaur Courser</a></td>
    <td class="card_type">Creature – Centaur Warrior</td>
    <td class="card_cost"><img alt="{2}"><img alt="{G}"></td>
  </tr>
  <tr id="r3">
    <td class="card_name"><a href="/mtg/Island">Island</a></td>
    <td class="card_type">Basic Land</td>
    <td class="card_cost"></td>
  </tr>
</table>
</body></html>`

const deckPage = `<html><body>
<h1>deckbox.org</h1>
<div id="deck_title">Modern Burn</div>
<table class="deck_table" data-role="main">
  <tr><th>Main</th></tr>
  <tr id="m1"><td class="card_count">4</td><td class="card_name"><a href="/mtg/Lightning Bolt">Lightning Bolt</a></td></tr>
  <tr id="m2"><td class="card_count">4</td><td class="card_name"><a href="/mtg/Goblin Guide">Goblin Guide</a></td></tr>
  <script>deck.summary("main", "8 cards, 2 distinct")</script>
</table>
<table class="deck_table" data-role="sideboard">
  <tr id="s1"><td class="card_count">2</td><td class="card_name"><a href="/mtg/Smash to Smithereens">Smash to Smithereens</a></td></tr>
  <tr><td colspan="2">2 cards, 1 distinct</td></tr>
</table>
</body></html>`

const emptyDeckPage = `<html><body>
<div id="deck_title">Empty deck</div>
<table class="deck_table" data-role="main"><tr><th>Main</th></tr></table>
<table class="deck_table" data-role="sideboard"><tr><th>Sideboard</th></tr></table>
</body></html>`

const cardPage = `<html><body>
<img class="card_image" src="/system/images/mtg/cards/191.jpg">
<table class="card_details">
  <tr><td>Name</td><td>Tarmogoyf</td></tr>
  <tr><td>Editions</td><td><img src="/images/mtg/editions/fut_r.jpg" data-title="Future Sight"><img src="/images/mtg/editions/mma_m.jpg" title="Modern Masters"></td></tr>
  <tr><td>Mana</td><td><img alt="{1}"><img alt="{G}"></td></tr>
  <tr><td>Type</td><td>Creature — Lhurgoyf</td></tr>
  <tr><td>Rules</td><td>Tarmogoyf's power is equal to the number of card types among cards in all graveyards.</td></tr>
  <tr><td>P / T</td><td>* / 1+*</td></tr>
  <tr><td colspan="2">Legal in Modern, Legacy, Vintage</td></tr>
  <tr><td colspan="2">Restricted in Nothing</td></tr>
  <tr><td>Rulings</td><td><a href="/mtg/Tarmogoyf/rulings">3 rulings</a></td></tr>
  <tr><td>Artist</td><td>Justin Murray</td></tr>
</table>
</body></html>`

const friendsPage = `<html><body>
<div class="user_summary">
  <a class="user_link" href="/users/alice"><img src="/avatars/alice.png"></a>
  <span class="last_seen"><script>timeAgo(x, 1390885219, 'ago')</script></span>
  <span class="location">Cluj</span>
</div>
<div class="user_summary">
  <a class="user_link" href="/users/bob/"><img src="https://cdn.example.com/bob.png"></a>
  <span class="last_seen"><script>timeAgo(x, 1390971619, 'ago')</script></span>
</div>
</body></html>`

const catalogPage = `<html><body>
<div id="filter_edition"></div>
<script>filters.edition = [["Magic 2010","m10"],["Limited Edition Alpha","lea"],["Future Sight","fut"]];</script>
<div id="filter_type"></div>
<script>filters.type = [["Creature","cr"],["Instant","in"]];</script>
<div id="filter_rarity"></div>
<script>filters.rarity = [["Common","c"],["Mythic Rare","m"]];</script>
<div id="filter_color"></div>
<script>filters.color = [["Green","g"],["Red","r"]];</script>
<div id="filter_language"></div>
<script>filters.language = [["English","en"]];</script>
</body></html>`

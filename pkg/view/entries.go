package view

import (
	"encoding/json"
	"strings"

	"github.com/Await-0x/RealmsWorld/pkg/types"
)

type EntryKind string

const (
	StatKind   EntryKind = "stat"
	LinkKind   EntryKind = "link"
	DetailKind EntryKind = "detail"
)

type Icon string

const (
	IconEtherscan Icon = "etherscan"
	IconDiscord   Icon = "discord"
	IconTwitter   Icon = "twitter"
	IconGlobe     Icon = "globe"
	IconOffer     Icon = "offer"
	IconFloor     Icon = "floor"
	IconListed    Icon = "listed"
	IconVolume    Icon = "volume"
	IconCount     Icon = "count"
)

// Entry is one item of the collection header. The concrete type decides
// which fields are present; the JSON form carries the kind.
type Entry interface {
	Kind() EntryKind
}

type Stat struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Icon  Icon   `json:"icon"`
}

type Link struct {
	Href string `json:"href"`
	Icon Icon   `json:"icon"`
}

type Detail struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

func (Stat) Kind() EntryKind   { return StatKind }
func (Link) Kind() EntryKind   { return LinkKind }
func (Detail) Kind() EntryKind { return DetailKind }

func (s Stat) MarshalJSON() ([]byte, error) {
	type stat Stat
	return json.Marshal(struct {
		Kind EntryKind `json:"kind"`
		stat
	}{StatKind, stat(s)})
}

func (l Link) MarshalJSON() ([]byte, error) {
	type link Link
	return json.Marshal(struct {
		Kind EntryKind `json:"kind"`
		link
	}{LinkKind, link(l)})
}

func (d Detail) MarshalJSON() ([]byte, error) {
	type detail Detail
	return json.Marshal(struct {
		Kind EntryKind `json:"kind"`
		detail
	}{DetailKind, detail(d)})
}

const (
	etherscanAddress = "https://etherscan.io/address/"
	twitterProfile   = "https://twitter.com/"
	chainName        = "Ethereum"
)

func Stats(c *types.Collection) []Entry {
	floor := "0.0"
	if c.FloorAsk.Price != nil {
		floor = types.FormatEther(c.FloorAsk.Price.Amount.Raw)
	}
	return []Entry{
		Stat{Title: "Top Offer", Value: types.FormatNumber(c.FloorSale["1day"]), Icon: IconOffer},
		Stat{Title: "Floor", Value: floor, Icon: IconFloor},
		Stat{Title: "Listed", Value: c.OnSaleCount, Icon: IconListed},
		Stat{Title: "Total Volume", Value: types.FormatNumber(c.Volume.AllTime), Icon: IconVolume},
		Stat{Title: "Count", Value: c.TokenCount, Icon: IconCount},
	}
}

// Links skips every link the collection has no value for.
func Links(c *types.Collection) []Entry {
	candidates := []Link{
		{Href: etherscanAddress + c.Id, Icon: IconEtherscan},
		{Href: c.DiscordUrl, Icon: IconDiscord},
		{Href: twitterHref(c.TwitterUsername), Icon: IconTwitter},
		{Href: c.ExternalUrl, Icon: IconGlobe},
	}
	if c.Id == "" {
		candidates[0].Href = ""
	}
	result := make([]Entry, 0, len(candidates))
	for _, l := range candidates {
		if l.Href != "" {
			result = append(result, l)
		}
	}
	return result
}

func twitterHref(username string) string {
	username = strings.TrimSpace(username)
	if username == "" || strings.HasPrefix(username, "http") {
		return username
	}
	return twitterProfile + strings.TrimPrefix(username, "@")
}

func Details(c *types.Collection) []Entry {
	return []Entry{
		Detail{Title: "Type", Value: c.ContractKind},
		Detail{Title: "Chain", Value: chainName},
	}
}

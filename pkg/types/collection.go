package types

import (
	"strconv"
	"strings"
)

type Amount struct {
	Raw     string  `json:"raw"`
	Decimal float64 `json:"decimal"`
	Usd     float64 `json:"usd,omitempty"`
}

type Price struct {
	Currency string `json:"currency,omitempty"`
	Amount   Amount `json:"amount"`
}

type FloorAsk struct {
	Id      string `json:"id,omitempty"`
	TokenId string `json:"tokenId,omitempty"`
	Price   *Price `json:"price,omitempty"`
}

type Volume struct {
	OneDay    float64 `json:"1day"`
	SevenDay  float64 `json:"7day"`
	ThirtyDay float64 `json:"30day"`
	AllTime   float64 `json:"allTime"`
}

// Collection is the collection summary as delivered by the indexer.
type Collection struct {
	Id              string             `json:"id"`
	Name            string             `json:"name"`
	Image           string             `json:"image"`
	Description     string             `json:"description,omitempty"`
	ContractKind    string             `json:"contractKind"`
	DiscordUrl      string             `json:"discordUrl,omitempty"`
	TwitterUsername string             `json:"twitterUsername,omitempty"`
	ExternalUrl     string             `json:"externalUrl,omitempty"`
	TokenCount      string             `json:"tokenCount"`
	OnSaleCount     string             `json:"onSaleCount"`
	FloorAsk        FloorAsk           `json:"floorAsk"`
	FloorSale       map[string]float64 `json:"floorSale,omitempty"`
	Volume          Volume             `json:"volume"`
}

// NormalizeId lower cases contract addresses so lookups ignore checksum casing.
func NormalizeId(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

type TokenAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Market struct {
	FloorAsk FloorAsk `json:"floorAsk"`
}

type Token struct {
	TokenId    string           `json:"tokenId"`
	Name       string           `json:"name"`
	Image      string           `json:"image,omitempty"`
	Owner      string           `json:"owner,omitempty"`
	Rarity     float64          `json:"rarity,omitempty"`
	Attributes []TokenAttribute `json:"attributes"`
	Market     Market           `json:"market"`
}

// Price returns the listed price in ether, false when the token is not listed.
func (t *Token) Price() (float64, bool) {
	p := t.Market.FloorAsk.Price
	if p == nil {
		return 0, false
	}
	if p.Amount.Decimal != 0 || p.Amount.Raw == "" {
		return p.Amount.Decimal, true
	}
	f, err := strconv.ParseFloat(FormatEther(p.Amount.Raw), 64)
	return f, err == nil
}

func (t *Token) AttributeValues(key string) []string {
	values := make([]string, 0, 1)
	for _, a := range t.Attributes {
		if a.Key == key {
			values = append(values, a.Value)
		}
	}
	return values
}

type AttributeKind string

const (
	StringAttribute AttributeKind = "string"
	NumberAttribute AttributeKind = "number"
)

type AttributeValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// AttributeSummary lists every value of one trait with the number of
// tokens carrying it.
type AttributeSummary struct {
	Key    string           `json:"key"`
	Kind   AttributeKind    `json:"kind"`
	Values []AttributeValue `json:"values"`
	Min    *float64         `json:"minRange,omitempty"`
	Max    *float64         `json:"maxRange,omitempty"`
}

type Activity struct {
	Type      string  `json:"type"`
	TokenId   string  `json:"tokenId,omitempty"`
	From      string  `json:"fromAddress,omitempty"`
	To        string  `json:"toAddress,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// CollectionSnapshot is everything the collection page needs, stored and
// shipped as one unit.
type CollectionSnapshot struct {
	Collection Collection         `json:"collection"`
	Tokens     []Token            `json:"tokens"`
	Attributes []AttributeSummary `json:"attributes"`
	Activity   []Activity         `json:"activity,omitempty"`
}

func (s *CollectionSnapshot) Id() string {
	return NormalizeId(s.Collection.Id)
}

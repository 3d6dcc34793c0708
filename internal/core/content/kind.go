// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content manages the catalogue's four content kinds: banners,
portfolio cases, news posts and shop items.

The kinds share one lifecycle (create, list, get, update, delete), one slug
namespace per kind, and one tag association model. They differ only in
which optional field each one requires, which a [Kind] descriptor captures,
so a single [Manager] serves every kind.
*/
package content

// Kind describes one content kind.
type Kind struct {
	// Name is the stored discriminator and the slug namespace.
	Name string
	// Segment is the route segment under /api/admin.
	Segment string
	// Label names the kind in client-facing messages.
	Label string

	RequiresDate  bool
	RequiresPrice bool
}

var (
	Banner = Kind{Name: "banner", Segment: "banners", Label: "Banner", RequiresDate: true}
	Case   = Kind{Name: "case", Segment: "cases", Label: "Case"}
	News   = Kind{Name: "news", Segment: "news", Label: "News", RequiresDate: true}
	Shop   = Kind{Name: "shop", Segment: "shop", Label: "Shop item", RequiresPrice: true}
)

// Kinds lists every content kind in route registration order.
func Kinds() []Kind {
	return []Kind{Banner, Case, News, Shop}
}

// Package label maps the categorical strings emitted by the backend to
// closed sets with display names and colors. Every set has an Unknown
// member; Parse functions report ok=false for it so callers can log drift.
package label

// Category is an app category.
type Category int

const (
	CategoryUnknown Category = iota
	CategorySocial
	CategoryEntertainment
	CategoryGaming
	CategoryTools
	CategoryNews
	CategoryProductivity
	CategoryShopping
	CategorySystem
	CategoryOther
)

type categoryInfo struct {
	key   string
	name  string
	color string
}

var categories = map[Category]categoryInfo{
	CategorySocial:        {"Social", "社交", "#3B82F6"},
	CategoryEntertainment: {"Entertainment", "娱乐", "#A855F7"},
	CategoryGaming:        {"Gaming", "游戏", "#EF4444"},
	CategoryTools:         {"Tools", "工具", "#22C55E"},
	CategoryNews:          {"News", "新闻", "#EAB308"},
	CategoryProductivity:  {"Productivity", "生产力", "#6366F1"},
	CategoryShopping:      {"Shopping", "购物", "#EC4899"},
	CategorySystem:        {"System", "系统", "#6B7280"},
	CategoryOther:         {"Other", "其他", "#9CA3AF"},
}

const unknownColor = "#9CA3AF"

// ParseCategory resolves the backend key, e.g. "Social".
func ParseCategory(s string) (Category, bool) {
	for c, info := range categories {
		if info.key == s {
			return c, true
		}
	}
	return CategoryUnknown, false
}

// String returns the backend key, or "Unknown".
func (c Category) String() string {
	if info, ok := categories[c]; ok {
		return info.key
	}
	return "Unknown"
}

// Name returns the localized display name.
func (c Category) Name() string {
	if info, ok := categories[c]; ok {
		return info.name
	}
	return "未知"
}

func (c Category) Color() string {
	if info, ok := categories[c]; ok {
		return info.color
	}
	return unknownColor
}

// CategoryName localizes a raw category string, falling back to the raw
// value when it is not a known category.
func CategoryName(s string) string {
	if c, ok := ParseCategory(s); ok {
		return c.Name()
	}
	return s
}

// CategoryKeys lists the backend keys in display order.
func CategoryKeys() []string {
	keys := make([]string, 0, len(categories))
	for c := CategorySocial; c <= CategoryOther; c++ {
		keys = append(keys, categories[c].key)
	}
	return keys
}

// DeviceType is the kind of usage-data source.
type DeviceType int

const (
	DeviceUnknown DeviceType = iota
	DevicePhone
	DeviceComputer
)

func ParseDeviceType(s string) (DeviceType, bool) {
	switch s {
	case "phone":
		return DevicePhone, true
	case "computer":
		return DeviceComputer, true
	}
	return DeviceUnknown, false
}

func (d DeviceType) Name() string {
	switch d {
	case DevicePhone:
		return "手機"
	case DeviceComputer:
		return "電腦"
	}
	return "未知設備"
}

func (d DeviceType) Icon() string {
	switch d {
	case DevicePhone:
		return "📱"
	case DeviceComputer:
		return "💻"
	}
	return "🌐"
}

func (d DeviceType) Color() string {
	switch d {
	case DevicePhone:
		return "#1890FF"
	case DeviceComputer:
		return "#52C41A"
	}
	return unknownColor
}

package intl

import (
	"strings"

	"golang.org/x/text/language"
)

// localeLayouts holds Go time layouts indexed by style: full, long,
// medium, short.
type localeLayouts struct {
	date [4]string
	time [4]string
	sep  string
}

func styleIndex(s DateTimeStyle) int {
	switch s {
	case StyleFull:
		return 0
	case StyleLong:
		return 1
	case StyleShort:
		return 3
	default:
		return 2
	}
}

// Go renders month and weekday names in English only, so long and full
// dates fall back to numeric layouts for other languages.
func numericLayouts(short, medium, clock24 string) localeLayouts {
	return localeLayouts{
		date: [4]string{medium, medium, medium, short},
		time: [4]string{clock24 + ":05 MST", clock24 + ":05 MST", clock24 + ":05", clock24},
		sep:  " ",
	}
}

var (
	layoutsEnUS = localeLayouts{
		date: [4]string{"Monday, January 2, 2006", "January 2, 2006", "Jan 2, 2006", "1/2/06"},
		time: [4]string{"3:04:05 PM MST", "3:04:05 PM MST", "3:04:05 PM", "3:04 PM"},
		sep:  ", ",
	}
	layoutsEnGB = localeLayouts{
		date: [4]string{"Monday, 2 January 2006", "2 January 2006", "2 Jan 2006", "02/01/2006"},
		time: [4]string{"15:04:05 MST", "15:04:05 MST", "15:04:05", "15:04"},
		sep:  ", ",
	}

	// Keyed by full tag first, then by base language.
	localeTable = map[string]localeLayouts{
		"en":    layoutsEnUS,
		"en-US": layoutsEnUS,
		"en-GB": layoutsEnGB,
		"en-AU": layoutsEnGB,
		"en-IE": layoutsEnGB,
		"en-NZ": layoutsEnGB,
		"de":    numericLayouts("02.01.06", "02.01.2006", "15:04"),
		"fr":    numericLayouts("02/01/2006", "02/01/2006", "15:04"),
		"es":    numericLayouts("02/01/06", "02/01/2006", "15:04"),
		"it":    numericLayouts("02/01/06", "02/01/2006", "15:04"),
		"pt":    numericLayouts("02/01/2006", "02/01/2006", "15:04"),
		"nl":    numericLayouts("02-01-2006", "02-01-2006", "15:04"),
		"pl":    numericLayouts("02.01.2006", "02.01.2006", "15:04"),
		"ru":    numericLayouts("02.01.2006", "02.01.2006", "15:04"),
		"uk":    numericLayouts("02.01.06", "02.01.2006", "15:04"),
		"ja":    numericLayouts("2006/01/02", "2006/01/02", "15:04"),
		"zh":    numericLayouts("2006/1/2", "2006-01-02", "15:04"),
		"ko":    numericLayouts("06. 1. 2.", "2006. 1. 2.", "15:04"),
		"ar":    numericLayouts("2/1/2006", "02/01/2006", "15:04"),
		"he":    numericLayouts("2.1.2006", "02.01.2006", "15:04"),
	}
)

var zoneLayouts = map[TimeZoneStyle]string{
	ZoneGMT:         "GMT-07:00",
	ZoneBasic:       "-0700",
	ZoneExtended:    "-07:00",
	ZoneUTCBasic:    "Z0700",
	ZoneUTCExtended: "Z07:00",
}

func lookupLayouts(tag language.Tag) localeLayouts {
	if l, ok := localeTable[tag.String()]; ok {
		return l
	}
	base, _ := tag.Base()
	region, conf := tag.Region()
	if conf != language.No {
		if l, ok := localeTable[base.String()+"-"+region.String()]; ok {
			return l
		}
	}
	if l, ok := localeTable[base.String()]; ok {
		return l
	}
	return layoutsEnUS
}

// layoutFor composes the layout for normalized options. Hiding both parts
// falls back to the medium date.
func layoutFor(tag language.Tag, o DateTimeOptions) string {
	l := lookupLayouts(tag)

	parts := make([]string, 0, 2)
	if o.DateStyle != StyleHidden {
		parts = append(parts, l.date[styleIndex(o.DateStyle)])
	}
	if o.TimeStyle != StyleHidden {
		parts = append(parts, l.time[styleIndex(o.TimeStyle)])
	}
	if len(parts) == 0 {
		parts = append(parts, l.date[styleIndex(StyleMedium)])
	}

	layout := strings.Join(parts, l.sep)
	if z, ok := zoneLayouts[o.TimeZoneStyle]; ok {
		layout += " " + z
	}
	return layout
}

package main

import (
	"io"

	"github.com/go-faster/jx"

	"softlist/romident"
	"softlist/swlist"
)

func writeJSON(w io.Writer, encode func(e *jx.Encoder)) error {
	var e jx.Encoder
	e.SetIdent(2)
	encode(&e)
	_, err := w.Write(append(e.Bytes(), '\n'))
	return err
}

func encodeListHeader(e *jx.Encoder, l *swlist.List) {
	e.Field("name", func(e *jx.Encoder) { e.Str(l.Name()) })
	e.Field("description", func(e *jx.Encoder) { e.Str(l.Description()) })
	e.Field("type", func(e *jx.Encoder) { e.Str(l.Type().String()) })
	e.Field("filter", func(e *jx.Encoder) { e.Str(l.Filter()) })
	e.Field("state", func(e *jx.Encoder) { e.Str(l.State().String()) })
}

func encodeErrors(e *jx.Encoder, l *swlist.List) {
	e.Field("errors", func(e *jx.Encoder) {
		e.ArrStart()
		for _, err := range l.Errors() {
			e.Str(err.Error())
		}
		e.ArrEnd()
	})
}

func encodeInfos(e *jx.Encoder, infos []*swlist.Info) {
	e.ArrStart()
	for _, info := range infos {
		encodeInfo(e, info)
	}
	e.ArrEnd()
}

func encodeInfo(e *jx.Encoder, info *swlist.Info) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("shortname", func(e *jx.Encoder) { e.Str(info.Shortname()) })
		e.Field("longname", func(e *jx.Encoder) { e.Str(info.Longname()) })
		if info.Parentname() != "" {
			e.Field("parent", func(e *jx.Encoder) { e.Str(info.Parentname()) })
		}
		e.Field("year", func(e *jx.Encoder) { e.Str(info.Year()) })
		e.Field("publisher", func(e *jx.Encoder) { e.Str(info.Publisher()) })
		e.Field("supported", func(e *jx.Encoder) { e.Str(info.Supported().String()) })
		e.Field("parts", func(e *jx.Encoder) {
			e.ArrStart()
			for _, part := range info.Parts() {
				e.Obj(func(e *jx.Encoder) {
					e.Field("name", func(e *jx.Encoder) { e.Str(part.Name()) })
					e.Field("interface", func(e *jx.Encoder) { e.Str(part.Interface()) })
					e.Field("compatibility", func(e *jx.Encoder) { e.Str(part.IsCompatible(info.List()).String()) })
				})
			}
			e.ArrEnd()
		})
	})
}

func encodeMatch(e *jx.Encoder, m romident.Match) {
	e.Obj(func(e *jx.Encoder) {
		if m.Section != "" {
			e.Field("section", func(e *jx.Encoder) { e.Str(m.Section) })
		}
		e.Field("list", func(e *jx.Encoder) { e.Str(m.Info.List().Name()) })
		e.Field("software", func(e *jx.Encoder) { e.Str(m.Info.Shortname()) })
		e.Field("part", func(e *jx.Encoder) { e.Str(m.Part.Name()) })
		e.Field("rom", func(e *jx.Encoder) { e.Str(m.ROM.Name) })
		e.Field("checksum", func(e *jx.Encoder) { e.Str(m.ROM.Checksum()) })
	})
}

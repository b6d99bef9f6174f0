// Package envelope recovers a <FILE_CHANGES> directive block from
// arbitrary surrounding prose (typically raw LLM output) and decodes its
// children into Directive values.
package envelope

import (
	"regexp"
	"strings"

	"github.com/developingjames/patchbundle/pkg/hunk"
)

const (
	openEnvelope  = "<FILE_CHANGES>"
	closeEnvelope = "</FILE_CHANGES>"
)

var (
	tagPattern  = regexp.MustCompile(`<(FILE_[A-Z]+)([^>]*?)(/?)>`)
	attrPattern = regexp.MustCompile(`([a-zA-Z_]+)="([^"]*)"`)
)

// Extract locates the first <FILE_CHANGES>...</FILE_CHANGES> block in
// input, decodes its children into Directives, and returns the input with
// that block excised. found is false if no envelope was present (or its
// closing tag was never reached), in which case directives is nil and
// rest equals input.
func Extract(input string) (directives []Directive, rest string, found bool) {
	start := strings.Index(input, openEnvelope)
	if start == -1 {
		return nil, input, false
	}
	bodyStart := start + len(openEnvelope)
	relEnd := strings.Index(input[bodyStart:], closeEnvelope)
	if relEnd == -1 {
		return nil, input, false
	}
	bodyEnd := bodyStart + relEnd
	blockEnd := bodyEnd + len(closeEnvelope)

	directives = parseChildren(input[bodyStart:bodyEnd])
	rest = input[:start] + input[blockEnd:]
	return directives, rest, true
}

func parseChildren(inner string) []Directive {
	var out []Directive
	pos := 0

	for pos <= len(inner) {
		loc := tagPattern.FindStringSubmatchIndex(inner[pos:])
		if loc == nil {
			break
		}
		tagName := inner[pos+loc[2] : pos+loc[3]]
		attrsRaw := inner[pos+loc[4] : pos+loc[5]]
		selfClosing := inner[pos+loc[6]:pos+loc[7]] == "/"
		tagEnd := pos + loc[1]
		attrs := parseAttrs(attrsRaw)

		if selfClosing {
			out = append(out, buildSelfClosing(tagName, attrs))
			pos = tagEnd
			continue
		}

		closeStr := "</" + tagName + ">"
		closeRel := strings.Index(inner[tagEnd:], closeStr)
		if closeRel == -1 {
			out = append(out, Directive{Kind: KindFail, FilePath: attrs["file_path"], Reason: "missing closing tag for " + tagName})
			pos = tagEnd
			continue
		}

		content := hunk.StripFence(inner[tagEnd : tagEnd+closeRel])
		out = append(out, buildPaired(tagName, attrs, content))
		pos = tagEnd + closeRel + len(closeStr)
	}

	return out
}

func parseAttrs(raw string) map[string]string {
	matches := attrPattern.FindAllStringSubmatch(raw, -1)
	attrs := make(map[string]string, len(matches))
	for _, m := range matches {
		attrs[m[1]] = m[2]
	}
	return attrs
}

func buildSelfClosing(tagName string, attrs map[string]string) Directive {
	switch tagName {
	case "FILE_RENAME":
		return buildFromTo(KindRename, "FILE_RENAME", attrs)
	case "FILE_MOVE":
		return buildFromTo(KindMove, "FILE_MOVE", attrs)
	case "FILE_COPY":
		return buildFromTo(KindCopy, "FILE_COPY", attrs)
	case "FILE_DELETE":
		fp, ok := attrs["file_path"]
		if !ok {
			return Directive{Kind: KindFail, Reason: "FILE_DELETE missing required file_path attribute"}
		}
		return Directive{Kind: KindDelete, FilePath: fp}
	case "FILE_NEW", "FILE_PATCH":
		return Directive{Kind: KindFail, FilePath: attrs["file_path"], Reason: tagName + " requires a closing tag and cannot be self-closing"}
	default:
		return Directive{Kind: KindFail, FilePath: attrs["file_path"], Reason: "unrecognized tag " + tagName}
	}
}

func buildPaired(tagName string, attrs map[string]string, content string) Directive {
	switch tagName {
	case "FILE_NEW":
		fp, ok := attrs["file_path"]
		if !ok {
			return Directive{Kind: KindFail, Reason: "FILE_NEW missing required file_path attribute"}
		}
		return Directive{Kind: KindNew, FilePath: fp, Content: content}
	case "FILE_PATCH":
		fp, ok := attrs["file_path"]
		if !ok {
			return Directive{Kind: KindFail, Reason: "FILE_PATCH missing required file_path attribute"}
		}
		return Directive{Kind: KindPatch, FilePath: fp, Body: content}
	case "FILE_RENAME", "FILE_DELETE", "FILE_MOVE", "FILE_COPY":
		return Directive{Kind: KindFail, FilePath: attrs["file_path"], Reason: tagName + " is self-closing and cannot carry a body"}
	default:
		return Directive{Kind: KindFail, FilePath: attrs["file_path"], Reason: "unrecognized tag " + tagName}
	}
}

func buildFromTo(kind Kind, tagName string, attrs map[string]string) Directive {
	from, okFrom := attrs["from_path"]
	to, okTo := attrs["to_path"]
	if !okFrom || !okTo {
		return Directive{Kind: KindFail, Reason: tagName + " missing required from_path/to_path attributes"}
	}
	return Directive{Kind: kind, FromPath: from, ToPath: to}
}

package imgcodecs

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/imgcodecs/internal/ctxlog"
)

// codecRootSchema defines the top-level structure of a metadata file,
// expecting exactly one 'codec' block.
type codecRootSchema struct {
	Codecs []*hclCodec `hcl:"codec,block"`
}

// hclCodec represents a single 'codec' block in a metadata file for decoding
// purposes.
type hclCodec struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// codecBodySchema defines the schema for the *body* of a 'codec' block.
var codecBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "version"},
		{Name: "extensions"},
		{Name: "mime_types"},
		{Name: "magic_numbers"},
		{Name: "priority"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "compression_level"},
	},
}

// hclCompressionLevel mirrors the 'compression_level' block of a metadata
// file. Step is optional; codecs with a fixed granularity may omit it.
type hclCompressionLevel struct {
	Min     float64  `hcl:"min"`
	Max     float64  `hcl:"max"`
	Default float64  `hcl:"default"`
	Step    *float64 `hcl:"step,optional"`
}

// ParseCodecInfo reads a single metadata file and produces its in-memory
// descriptor. The returned descriptor has every metadata field populated but
// not Path; module path derivation is a separate concern of the discovery
// walk. Any structural or evaluation problem fails with ErrParse.
func ParseCodecInfo(ctx context.Context, path string) (*CodecInfo, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing codec info file", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", ErrParse, path, diags)
	}

	root := &codecRootSchema{}
	if diags := gohcl.DecodeBody(file.Body, nil, root); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", ErrParse, path, diags)
	}
	if len(root.Codecs) != 1 {
		return nil, fmt.Errorf("%w: %s: expected exactly one codec block, found %d", ErrParse, path, len(root.Codecs))
	}

	block := root.Codecs[0]
	if block.Name == "" {
		return nil, fmt.Errorf("%w: %s: codec block has an empty name label", ErrParse, path)
	}

	content, contentDiags := block.Body.Content(codecBodySchema)
	var allDiags hcl.Diagnostics
	allDiags = append(allDiags, contentDiags...)
	if contentDiags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", ErrParse, path, allDiags)
	}

	info := &CodecInfo{Name: strings.ToLower(block.Name)}

	if attr, exists := content.Attributes["description"]; exists {
		allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &info.Description)...)
	}
	if attr, exists := content.Attributes["version"]; exists {
		allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &info.Version)...)
	}
	if attr, exists := content.Attributes["priority"]; exists {
		allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &info.Priority)...)
	}

	// Extensions and MIME types are matched case-insensitively by the public
	// API, so both are folded to lower case at parse time.
	if attr, exists := content.Attributes["extensions"]; exists {
		values, listDiags := decodeStringList(attr.Expr, true)
		allDiags = append(allDiags, listDiags...)
		info.Extensions = values
	}
	if attr, exists := content.Attributes["mime_types"]; exists {
		values, listDiags := decodeStringList(attr.Expr, true)
		allDiags = append(allDiags, listDiags...)
		info.MimeTypes = values
	}
	if attr, exists := content.Attributes["magic_numbers"]; exists {
		values, listDiags := decodeStringList(attr.Expr, false)
		allDiags = append(allDiags, listDiags...)
		info.MagicNumbers = values
	}

	compressionLevel, clDiags := parseCompressionLevel(content.Blocks)
	allDiags = append(allDiags, clDiags...)
	info.CompressionLevel = compressionLevel

	if allDiags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", ErrParse, path, allDiags)
	}

	logger.Debug("Parsed codec info", "name", info.Name, "version", info.Version)
	return info, nil
}

// parseCompressionLevel finds and decodes the optional 'compression_level'
// block from a codec's body content.
func parseCompressionLevel(blocks hcl.Blocks) (*CompressionLevelRange, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	levelBlocks := blocks.OfType("compression_level")
	if len(levelBlocks) == 0 {
		return nil, nil
	}
	if len(levelBlocks) > 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Duplicate compression_level block",
			Detail:   "A codec may declare at most one compression_level block.",
			Subject:  levelBlocks[1].DefRange.Ptr(),
		})
		return nil, diags
	}

	decoded := &hclCompressionLevel{}
	diags = append(diags, gohcl.DecodeBody(levelBlocks[0].Body, nil, decoded)...)
	if diags.HasErrors() {
		return nil, diags
	}

	level := &CompressionLevelRange{
		Min:     decoded.Min,
		Max:     decoded.Max,
		Default: decoded.Default,
		Step:    1,
	}
	if decoded.Step != nil {
		level.Step = *decoded.Step
	}

	return level, diags
}

// decodeStringList evaluates expr as a list of strings, optionally folding
// each element to lower case.
func decodeStringList(expr hcl.Expression, fold bool) ([]string, hcl.Diagnostics) {
	value, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	converted, err := convert.Convert(value, cty.List(cty.String))
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid string list",
			Detail:   err.Error(),
			Subject:  expr.Range().Ptr(),
		}}
	}
	if converted.IsNull() {
		return nil, nil
	}

	var out []string
	for it := converted.ElementIterator(); it.Next(); {
		_, element := it.Element()
		if element.IsNull() {
			continue
		}
		s := element.AsString()
		if fold {
			s = strings.ToLower(s)
		}
		out = append(out, s)
	}

	return out, nil
}

package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/tm2label/label"
	"github.com/ByLCY/tm2label/layout"
)

// Compile 将标签文件 AST 转换为 label.Spec 列表，未设置的字段取 label.DefaultSpec 的值，
// tape 除外：未写 tape 时 Spec.Tape 为空，见 label.Spec.WithTape。
// 未知键、非法取值与重复的标签名都会带上位置信息返回。
func Compile(file *File) ([]label.Spec, error) {
	if file == nil {
		return nil, fmt.Errorf("标签文件为空")
	}
	if len(file.Labels) == 0 {
		return nil, fmt.Errorf("标签文件中没有 label 段落")
	}
	seen := map[string]string{}
	specs := make([]label.Spec, 0, len(file.Labels))
	for _, l := range file.Labels {
		name := strings.TrimSpace(string(l.Name))
		if name == "" {
			return nil, fmt.Errorf("%s: label 名称不能为空", l.Pos)
		}
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%s: label %s 重复定义（首次定义于 %s）", l.Pos, name, prev)
		}
		seen[name] = l.Pos.String()

		spec, err := compileLabel(l)
		if err != nil {
			return nil, fmt.Errorf("label %s: %w", name, err)
		}
		spec.Name = name
		specs = append(specs, spec)
	}
	return specs, nil
}

func compileLabel(l *Label) (label.Spec, error) {
	spec := label.DefaultSpec()
	spec.Tape = "" // 未写 tape 时由调用方决定默认纸带
	var hasLAN, hasText, hasKind bool

	for _, item := range l.Items {
		if item.LAN != nil {
			if hasLAN {
				return spec, fmt.Errorf("%s: lan 块重复", item.LAN.Pos)
			}
			hasLAN = true
			if err := applyLAN(&spec.LAN, item.LAN); err != nil {
				return spec, err
			}
			continue
		}
		p := item.Property
		raw := p.Value.Raw()
		switch strings.ToLower(p.Key) {
		case "tape":
			spec.Tape = raw
		case "auto-length", "autolength":
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return spec, fmt.Errorf("%s: auto-length 需要 true/false，实际 %q", p.Pos, raw)
			}
			spec.AutoLength = b
		case "margin":
			length, err := layout.ParseLength(raw)
			if err != nil {
				return spec, fmt.Errorf("%s: %w", p.Pos, err)
			}
			spec.Margin = length.MM()
		case "text":
			hasText = true
			spec.Text = raw
		case "type":
			kind, err := label.ParseKind(raw)
			if err != nil {
				return spec, fmt.Errorf("%s: %w", p.Pos, err)
			}
			hasKind = true
			spec.Kind = kind
		default:
			return spec, fmt.Errorf("%s: 未知属性 %q", p.Pos, p.Key)
		}
	}

	if hasLAN && hasText {
		return spec, fmt.Errorf("%s: lan 与 text 不能同时出现", l.Pos)
	}
	if !hasKind {
		if hasText {
			spec.Kind = label.KindPlain
		} else {
			spec.Kind = label.KindLAN
		}
	}
	return spec, nil
}

func applyLAN(lan *label.LAN, block *LANBlock) error {
	for _, p := range block.Properties {
		raw := p.Value.Raw()
		switch strings.ToLower(p.Key) {
		case "length":
			lan.Length = raw
		case "category", "cat":
			lan.Category = raw
		case "shielded", "shield":
			s, err := label.ParseShield(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Pos, err)
			}
			lan.Shielded = s
		case "core":
			c, err := label.ParseCore(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Pos, err)
			}
			lan.Core = c
		default:
			return fmt.Errorf("%s: lan 块中未知属性 %q", p.Pos, p.Key)
		}
	}
	return nil
}

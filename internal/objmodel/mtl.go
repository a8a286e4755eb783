package objmodel

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// ParseMTL 解析 MTL 文本，返回按名称索引的材质
//
// 未指定 Kd 的材质默认为白色，未指定 d/Tr 的材质完全不透明。
func ParseMTL(data []byte) (map[string]*Material, error) {
	materials := make(map[string]*Material)
	var current *Material

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: newmtl without name", lineNum)
			}
			current = &Material{
				Name:    fields[1],
				Diffuse: [3]float64{1, 1, 1},
				Opacity: 1,
			}
			materials[current.Name] = current
			continue
		}

		if current == nil {
			// newmtl 之前的指令没有归属
			continue
		}

		switch fields[0] {
		case "Kd":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			current.Diffuse = [3]float64{v[0], v[1], v[2]}
		case "d":
			v, err := parseFloats(fields[1:], 1)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			current.Opacity = v[0]
		case "Tr":
			v, err := parseFloats(fields[1:], 1)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			current.Opacity = 1 - v[0]
		case "map_Kd":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: map_Kd without file", lineNum)
			}
			// 贴图选项（-s、-o 等）之后的最后一个字段是文件名
			current.DiffuseMap = fields[len(fields)-1]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan mtl: %w", err)
	}

	if len(materials) == 0 {
		return nil, fmt.Errorf("mtl contains no materials")
	}

	return materials, nil
}

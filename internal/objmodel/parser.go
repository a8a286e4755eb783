package objmodel

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// vertexKey 一个面顶点引用的全局位置/纹理坐标索引（0 起，-1 表示缺失）
type vertexKey struct {
	v, vt int
}

type objectBuilder struct {
	obj   *Object
	remap map[vertexKey]int
}

// ParseOBJ 解析 OBJ 文本
//
// 参数:
//   - data: OBJ 文件内容
//
// 返回:
//   - *Model: 解析结果，至少包含一个有面的对象
//   - error: 语法错误或索引越界时返回错误（带行号）
func ParseOBJ(data []byte) (*Model, error) {
	model := &Model{}

	var positions [][3]float64
	var uvs [][2]float64
	var current *objectBuilder
	currentMaterial := ""

	startObject := func(name string) {
		current = &objectBuilder{
			obj:   &Object{Name: name, Material: currentMaterial},
			remap: make(map[vertexKey]int),
		}
		model.Objects = append(model.Objects, current.obj)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "mtllib":
			model.MaterialLibs = append(model.MaterialLibs, fields[1:]...)

		case "o", "g":
			startObject(strings.Join(fields[1:], " "))

		case "usemtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: usemtl without name", lineNum)
			}
			currentMaterial = fields[1]
			if current != nil && len(current.obj.Indices) == 0 {
				current.obj.Material = currentMaterial
			}

		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			positions = append(positions, [3]float64{p[0], p[1], p[2]})

		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			uvs = append(uvs, [2]float64{p[0], p[1]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNum)
			}
			if current == nil {
				startObject("")
			}

			corners := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				key, err := parseFaceRef(ref, len(positions), len(uvs))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				corners = append(corners, current.vertex(key, positions, uvs))
			}

			// 扇形三角化
			for i := 1; i+1 < len(corners); i++ {
				current.obj.Indices = append(current.obj.Indices, corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan obj: %w", err)
	}

	// 丢弃没有面的空对象（例如只有 o 指令的占位）
	kept := model.Objects[:0]
	for _, o := range model.Objects {
		if len(o.Indices) > 0 {
			kept = append(kept, o)
		}
	}
	model.Objects = kept

	if len(model.Objects) == 0 {
		return nil, fmt.Errorf("obj contains no faces")
	}

	return model, nil
}

// vertex 返回 key 对应的局部顶点索引，首次出现时追加
func (b *objectBuilder) vertex(key vertexKey, positions [][3]float64, uvs [][2]float64) int {
	if idx, ok := b.remap[key]; ok {
		return idx
	}

	idx := len(b.obj.Positions)
	b.obj.Positions = append(b.obj.Positions, positions[key.v])
	if key.vt >= 0 {
		b.obj.UVs = append(b.obj.UVs, uvs[key.vt])
	} else {
		b.obj.UVs = append(b.obj.UVs, [2]float64{})
	}
	b.remap[key] = idx
	return idx
}

// parseFaceRef 解析 "v"、"v/vt"、"v//vn"、"v/vt/vn" 形式的面顶点引用
// 支持负数（相对）索引
func parseFaceRef(ref string, numPositions, numUVs int) (vertexKey, error) {
	parts := strings.Split(ref, "/")

	v, err := resolveIndex(parts[0], numPositions)
	if err != nil {
		return vertexKey{}, fmt.Errorf("bad vertex index in %q: %w", ref, err)
	}

	vt := -1
	if len(parts) > 1 && parts[1] != "" {
		vt, err = resolveIndex(parts[1], numUVs)
		if err != nil {
			return vertexKey{}, fmt.Errorf("bad uv index in %q: %w", ref, err)
		}
	}

	return vertexKey{v: v, vt: vt}, nil
}

func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}

	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	}
	return 0, fmt.Errorf("index %d out of range (have %d)", i, count)
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(fields))
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", fields[i], err)
		}
		out[i] = f
	}
	return out, nil
}

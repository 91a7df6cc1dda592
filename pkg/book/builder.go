package book

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rookie-chess/rookie/pkg/common"
)

type Result int

const (
	ResultUnknown Result = iota
	ResultWhiteWins
	ResultBlackWins
	ResultDraw
)

type builderNode struct {
	move     common.Move
	ply      int
	played   int
	won      int
	lost     int
	children []*builderNode
}

// Builder accumulates game openings into a move tree and writes it in book format.
type Builder struct {
	roots []*builderNode
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add merges one opening line. Won/lost counters are from the view of the side that played each move.
func (bb *Builder) Add(line []common.Move, result Result) {
	var level = &bb.roots
	for ply, move := range line {
		var node *builderNode
		for _, n := range *level {
			if n.move == move {
				node = n
				break
			}
		}
		if node == nil {
			node = &builderNode{move: move, ply: ply + 1}
			*level = append(*level, node)
		}
		node.played++
		var whiteMoved = ply%2 == 0
		switch {
		case result == ResultWhiteWins && whiteMoved, result == ResultBlackWins && !whiteMoved:
			node.won++
		case result == ResultWhiteWins && !whiteMoved, result == ResultBlackWins && whiteMoved:
			node.lost++
		}
		level = &node.children
	}
}

// WriteTo serialises the tree in pre-order so the first root record follows the header.
func (bb *Builder) WriteTo(w io.Writer) (int64, error) {
	var order []*builderNode
	var child = make(map[*builderNode]int)
	var sibling = make(map[*builderNode]int)

	var visit func(level []*builderNode)
	visit = func(level []*builderNode) {
		for i, n := range level {
			order = append(order, n)
			var index = HeaderRecords + len(order) - 1
			if i > 0 {
				sibling[level[i-1]] = index
			}
			if len(n.children) > 0 {
				child[n] = index + 1
			}
			visit(n.children)
		}
	}
	visit(bb.roots)

	var writer = bufio.NewWriter(w)
	var written int64

	var header [HeaderSize]byte
	copy(header[:], magic[:])
	n, err := writer.Write(header[:])
	written += int64(n)
	if err != nil {
		return written, err
	}

	var record [RecordSize]byte
	for _, node := range order {
		var childIndex, ok = child[node]
		if !ok {
			childIndex = -1
		}
		siblingIndex, ok := sibling[node]
		if !ok {
			siblingIndex = -1
		}
		record = [RecordSize]byte{}
		record[0] = toBookSquare(node.move.From)
		record[1] = toBookSquare(node.move.To)
		record[2] = encodePromotion(node.move.Promotion)
		record[3] = byte(common.Min(node.ply, math.MaxUint8))
		binary.LittleEndian.PutUint16(record[4:6], uint16(common.Min(node.played, math.MaxUint16)))
		binary.LittleEndian.PutUint32(record[8:12], uint32(node.played))
		binary.LittleEndian.PutUint32(record[12:16], uint32(node.won))
		binary.LittleEndian.PutUint32(record[16:20], uint32(node.lost))
		binary.LittleEndian.PutUint32(record[20:24], uint32(int32(childIndex)))
		binary.LittleEndian.PutUint32(record[24:28], uint32(int32(siblingIndex)))
		n, err = writer.Write(record[:])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, writer.Flush()
}

func (bb *Builder) Save(path string) error {
	var file, err = os.Create(path)
	if err != nil {
		return err
	}
	if _, err = bb.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("write book %v: %w", path, err)
	}
	return file.Close()
}

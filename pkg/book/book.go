// Package book decodes and traverses the binary opening book.
//
// The file is a header block followed by fixed-size records. Records form a
// tree through absolute record indices (the header counts as record 0):
// Child is the first reply to a move, Sibling the next alternative at the
// same ply. A negative index means absent.
package book

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rookie-chess/rookie/pkg/common"
)

const (
	RecordSize    = 32
	HeaderRecords = 1
	HeaderSize    = HeaderRecords * RecordSize
	DefaultPath   = "books/rookie.bin"
)

var magic = [4]byte{'R', 'B', 'K', '1'}

var ErrCorrupt = errors.New("corrupt opening book")

const (
	promotionNone   = 0
	promotionQueen  = 1
	promotionRook   = 2
	promotionBishop = 4
	promotionKnight = 8
)

type Entry struct {
	From        common.Square
	To          common.Square
	Promotion   int
	Priority    int
	GamesPlayed int
	GamesWon    int
	GamesLost   int
	PlyCount    int
	Child       int
	Sibling     int
}

func (e *Entry) Move() common.Move {
	return common.Move{From: e.From, To: e.To, Promotion: e.Promotion}
}

// Book is read-only after loading and safe for concurrent use.
type Book struct {
	entries []Entry
}

func Load(path string) (*Book, error) {
	var file, err = os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open book: %w", err)
	}
	defer file.Close()
	var b *Book
	b, err = Decode(file)
	if err != nil {
		return nil, fmt.Errorf("load book %v: %w", path, err)
	}
	return b, nil
}

func Decode(r io.Reader) (*Book, error) {
	var reader = bufio.NewReader(r)

	var header [HeaderSize]byte
	if _, err := io.ReadFull(reader, header[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	if [4]byte(header[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, header[:4])
	}

	var entries []Entry
	var record [RecordSize]byte
	for {
		var _, err = io.ReadFull(reader, record[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: record %d truncated: %v", ErrCorrupt, HeaderRecords+len(entries), err)
		}
		entry, err := decodeRecord(record[:])
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorrupt, HeaderRecords+len(entries), err)
		}
		entries = append(entries, entry)
	}

	var last = HeaderRecords + len(entries)
	for i := range entries {
		var e = &entries[i]
		if e.Child >= last || (e.Child >= 0 && e.Child < HeaderRecords) ||
			e.Sibling >= last || (e.Sibling >= 0 && e.Sibling < HeaderRecords) {
			return nil, fmt.Errorf("%w: record %d: index out of range", ErrCorrupt, HeaderRecords+i)
		}
	}
	return &Book{entries: entries}, nil
}

func decodeRecord(data []byte) (Entry, error) {
	if data[0] > 63 || data[1] > 63 || data[0] == data[1] {
		return Entry{}, fmt.Errorf("bad squares %d %d", data[0], data[1])
	}
	var promotion, err = decodePromotion(data[2])
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		From:        fromBookSquare(data[0]),
		To:          fromBookSquare(data[1]),
		Promotion:   promotion,
		PlyCount:    int(data[3]),
		Priority:    int(binary.LittleEndian.Uint16(data[4:6])),
		GamesPlayed: int(binary.LittleEndian.Uint32(data[8:12])),
		GamesWon:    int(binary.LittleEndian.Uint32(data[12:16])),
		GamesLost:   int(binary.LittleEndian.Uint32(data[16:20])),
		Child:       int(int32(binary.LittleEndian.Uint32(data[20:24]))),
		Sibling:     int(int32(binary.LittleEndian.Uint32(data[24:28]))),
	}, nil
}

// Book squares are stored as file + rank*8.
func fromBookSquare(b byte) common.Square {
	return common.MakeSquare(int(b&7), int(b>>3))
}

func toBookSquare(sq common.Square) byte {
	return byte(sq.File() + sq.Rank()*8)
}

func decodePromotion(code byte) (int, error) {
	switch code {
	case promotionNone:
		return common.Empty, nil
	case promotionQueen:
		return common.Queen, nil
	case promotionRook:
		return common.Rook, nil
	case promotionBishop:
		return common.Bishop, nil
	case promotionKnight:
		return common.Knight, nil
	}
	return 0, fmt.Errorf("unknown promotion code %d", code)
}

func encodePromotion(promotion int) byte {
	switch promotion {
	case common.Queen:
		return promotionQueen
	case common.Rook:
		return promotionRook
	case common.Bishop:
		return promotionBishop
	case common.Knight:
		return promotionKnight
	}
	return promotionNone
}

// Entries exposes the decoded records; index i holds absolute record i+HeaderRecords.
func (b *Book) Entries() []Entry {
	return b.entries
}

func (b *Book) entry(index int) *Entry {
	return &b.entries[index-HeaderRecords]
}

// GetNextEntries walks the tree along played and returns the sibling chain reached.
// An empty result means the line left the book or the book ends there.
func (b *Book) GetNextEntries(played []common.Move) ([]Entry, error) {
	if len(b.entries) == 0 {
		return nil, nil
	}
	var index = HeaderRecords
	for _, move := range played {
		var found = -1
		var err = b.walkSiblings(index, func(i int, e *Entry) bool {
			if e.Move() == move {
				found = i
				return false
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		if found < 0 {
			return nil, nil
		}
		var child = b.entry(found).Child
		if child < 0 {
			return nil, nil
		}
		index = child
	}
	var result []Entry
	var err = b.walkSiblings(index, func(i int, e *Entry) bool {
		result = append(result, *e)
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (b *Book) GetNextMoves(played []common.Move) ([]common.Move, error) {
	var entries, err = b.GetNextEntries(played)
	if err != nil {
		return nil, err
	}
	var result = make([]common.Move, len(entries))
	for i := range entries {
		result[i] = entries[i].Move()
	}
	return result, nil
}

func (b *Book) walkSiblings(index int, visit func(i int, e *Entry) bool) error {
	for steps := 0; index >= 0; steps++ {
		if steps > len(b.entries) {
			return fmt.Errorf("%w: sibling cycle at record %d", ErrCorrupt, index)
		}
		var e = b.entry(index)
		if !visit(index, e) {
			return nil
		}
		index = e.Sibling
	}
	return nil
}

package vocoder

import (
	"errors"
	"testing"
)

func TestMatrixViews(t *testing.T) {
	m := NewMatrix(3, 4)
	if len(m.Data) != 12 {
		t.Fatalf("len(Data) = %d", len(m.Data))
	}
	rows := m.RowViews()
	rows[1][2] = 7
	if m.At(1, 2) != 7 || m.Data[6] != 7 {
		t.Fatalf("row view not shared: %v", m.Data)
	}
	// Appending to a row view must not clobber the next row.
	_ = append(m.Row(0), 42)
	if m.At(1, 0) != 0 {
		t.Fatalf("append overwrote row 1: %v", m.Data)
	}

	c := m.Clone()
	c.Set(1, 2, 1)
	r := m.ToRows()
	r[1][2] = 2
	if m.At(1, 2) != 7 {
		t.Fatalf("copies aliased the matrix: %v", m.At(1, 2))
	}
}

func TestMatrixFromRows(t *testing.T) {
	m, err := MatrixFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	if err != nil {
		t.Fatal(err)
	}
	if m.Rows != 3 || m.Cols != 2 || m.At(2, 1) != 6 {
		t.Fatalf("matrix = %+v", m)
	}
	if _, err := MatrixFromRows([][]float64{{1, 2}, {3}}); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("ragged: err = %v", err)
	}
	empty, err := MatrixFromRows(nil)
	if err != nil || empty.Rows != 0 || empty.Cols != 0 {
		t.Fatalf("empty: %+v %v", empty, err)
	}
}

func TestNewMatrixClampsNegative(t *testing.T) {
	m := NewMatrix(-1, 5)
	if m.Rows != 0 || len(m.Data) != 0 {
		t.Fatalf("matrix = %+v", m)
	}
}

func TestF0Contour(t *testing.T) {
	c := F0Contour{F0: []float64{0, 120, 0, 121}, TimeAxis: []float64{0, 0.005, 0.01, 0.015}}
	if c.Len() != 4 || c.VoicedCount() != 2 || c.Voiced(0) || !c.Voiced(1) {
		t.Fatalf("contour = %+v", c)
	}
}

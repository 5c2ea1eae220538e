package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// RotationMatrix is a 3x3 direction cosine matrix indexed [row][col].
// A proper rotation is orthonormal with a determinant of +1.
type RotationMatrix [3][3]float32

// IdentityMatrix returns the rotation matrix of the null rotation.
func IdentityMatrix() RotationMatrix {
	return RotationMatrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Quaternion returns the attitude in quaternion representation.
func (m RotationMatrix) Quaternion() Quaternion {
	return MatrixToQuaternion(m)
}

// RotationMatrix returns the attitude in rotation matrix representation.
func (m RotationMatrix) RotationMatrix() RotationMatrix {
	return m
}

// EulerAngles returns the attitude in Euler angle representation.
func (m RotationMatrix) EulerAngles() EulerAngles {
	return MatrixToEuler(m)
}

// At returns the element at the given row and column in double precision.
func (m RotationMatrix) At(row, col int) float64 {
	return float64(m[row][col])
}

// Row returns a row of the matrix as a vector.
func (m RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: m.At(row, 0), Y: m.At(row, 1), Z: m.At(row, 2)}
}

// Col returns a column of the matrix as a vector.
func (m RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: m.At(0, col), Y: m.At(1, col), Z: m.At(2, col)}
}

// Rotate applies the matrix to a coordinate vector.
func (m RotationMatrix) Rotate(v r3.Vector) r3.Vector {
	return r3.Vector{X: m.Row(0).Dot(v), Y: m.Row(1).Dot(v), Z: m.Row(2).Dot(v)}
}

// Transpose returns the transpose of the matrix, which is its inverse when the matrix is orthonormal.
func (m RotationMatrix) Transpose() RotationMatrix {
	var t RotationMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[j][i] = m[i][j]
		}
	}
	return t
}

// Dense copies the matrix into a gonum dense matrix.
func (m RotationMatrix) Dense() *mat.Dense {
	data := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return mat.NewDense(3, 3, data)
}

// Determinant returns the determinant of the matrix. It is +1 for a proper rotation.
func (m RotationMatrix) Determinant() float64 {
	return mat.Det(m.Dense())
}

// IsOrthonormal reports whether every row has unit length and the rows are mutually perpendicular,
// each to within tol. It does not look at the sign of the determinant.
func (m RotationMatrix) IsOrthonormal(tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(m.Row(i).Norm()-1) > tol {
			return false
		}
		for j := i + 1; j < 3; j++ {
			if math.Abs(m.Row(i).Dot(m.Row(j))) > tol {
				return false
			}
		}
	}
	return true
}

// Mat3 converts the matrix to a column-major mathgl matrix.
func (m RotationMatrix) Mat3() mgl32.Mat3 {
	return mgl32.Mat3{
		m[0][0], m[1][0], m[2][0],
		m[0][1], m[1][1], m[2][1],
		m[0][2], m[1][2], m[2][2],
	}
}

// RotationMatrixFromMat3 converts a column-major mathgl matrix.
func RotationMatrixFromMat3(mm mgl32.Mat3) RotationMatrix {
	var m RotationMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = mm.At(i, j)
		}
	}
	return m
}

package channel_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/promplot/internal/channel"
	"github.com/san-kum/promplot/internal/dataset"
	"github.com/san-kum/promplot/internal/matrix"
)

func filled(rows, cols int, f func(i, j int) float64) matrix.Matrix {
	m := make(matrix.Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			m[i][j] = f(i, j)
		}
	}
	return m
}

func demos(n, rows, cols int) []dataset.Demonstration {
	out := make([]dataset.Demonstration, n)
	for k := range out {
		idx := k + 1
		out[k] = dataset.Demonstration{
			Index: idx,
			Path:  fmt.Sprintf("demo%d.csv", idx),
			Data: filled(rows, cols, func(i, j int) float64 {
				return float64(idx*100 + i*10 + j)
			}),
		}
	}
	return out
}

var _ = Describe("Channel", func() {
	It("maps X, Y, Z to columns 0, 1, 2", func() {
		Expect(channel.X.Index()).To(Equal(0))
		Expect(channel.Y.Index()).To(Equal(1))
		Expect(channel.Z.Index()).To(Equal(2))
		Expect(channel.All).To(Equal([]channel.Channel{channel.X, channel.Y, channel.Z}))
	})

	It("parses names case-insensitively", func() {
		c, err := channel.Parse(" z ")
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(channel.Z))
		Expect(c.String()).To(Equal("Z"))

		_, err = channel.Parse("w")
		Expect(err).To(HaveOccurred())
	})

	It("parses lists without duplicates", func() {
		cs, err := channel.ParseList("z,x,z")
		Expect(err).NotTo(HaveOccurred())
		Expect(cs).To(Equal([]channel.Channel{channel.Z, channel.X}))

		cs, err = channel.ParseList("")
		Expect(err).NotTo(HaveOccurred())
		Expect(cs).To(Equal(channel.All))
	})
})

var _ = Describe("Extract", func() {
	var stats *dataset.Statistics

	BeforeEach(func() {
		stats = &dataset.Statistics{
			Mean:      filled(100, 3, func(i, j int) float64 { return float64(i) + float64(j)/10 }),
			Deviation: filled(100, 3, func(i, j int) float64 { return 0.25 * float64(j+1) }),
		}
	})

	It("produces 3 mean, 3 deviation and 30 raw vectors of 100 samples", func() {
		series, err := channel.Extract(stats, demos(10, 100, 3), channel.All)
		Expect(err).NotTo(HaveOccurred())
		Expect(series).To(HaveLen(3))

		raw := 0
		for _, s := range series {
			Expect(s.Samples()).To(Equal(stats.Mean.Rows()))
			Expect(s.Mean).To(HaveLen(100))
			Expect(s.Deviation).To(HaveLen(100))
			Expect(s.Demos).To(HaveLen(10))
			for _, d := range s.Demos {
				Expect(d).To(HaveLen(100))
				raw++
			}
		}
		Expect(raw).To(Equal(30))
	})

	It("uses the variance values directly as deviations", func() {
		stats.Deviation[5][1] = 4
		series, err := channel.Extract(stats, nil, channel.All)
		Expect(err).NotTo(HaveOccurred())

		y := series[1]
		Expect(y.Channel).To(Equal(channel.Y))
		Expect(y.Mean[5]).To(BeNumerically("~", 5.1, 1e-12))
		Expect(y.Upper[5]).To(Equal(y.Mean[5] + 4))
		Expect(y.Lower[5]).To(Equal(y.Mean[5] - 4))
		for i := range y.Mean {
			Expect(y.Upper[i]).To(Equal(y.Mean[i] + stats.Deviation[i][1]))
			Expect(y.Lower[i]).To(Equal(y.Mean[i] - stats.Deviation[i][1]))
		}
	})

	It("keeps demonstration order and values", func() {
		series, err := channel.Extract(stats, demos(3, 100, 3), []channel.Channel{channel.Z})
		Expect(err).NotTo(HaveOccurred())
		Expect(series).To(HaveLen(1))
		z := series[0]
		Expect(z.Demos[0][0]).To(Equal(102.0))
		Expect(z.Demos[1][0]).To(Equal(202.0))
		Expect(z.Demos[2][7]).To(Equal(372.0))
	})

	It("preserves row order of the mean table", func() {
		stats = &dataset.Statistics{
			Mean:      matrix.Matrix{{1, 2, 3}, {4, 5, 6}},
			Deviation: matrix.Matrix{{0, 0, 0}, {0, 0, 0}},
		}
		series, err := channel.Extract(stats, nil, channel.All)
		Expect(err).NotTo(HaveOccurred())
		Expect(series[0].Mean).To(Equal(matrix.Vector{1, 4}))
	})

	It("ignores columns beyond Z", func() {
		stats.Mean = filled(100, 5, func(i, j int) float64 { return float64(j) })
		stats.Deviation = filled(100, 5, func(i, j int) float64 { return 1 })
		series, err := channel.Extract(stats, demos(2, 100, 6), channel.All)
		Expect(err).NotTo(HaveOccurred())
		Expect(series[2].Mean[0]).To(Equal(2.0))
	})

	It("rejects a variance table shorter than the mean", func() {
		stats.Deviation = stats.Deviation[:90]
		_, err := channel.Extract(stats, nil, channel.All)
		Expect(err).To(MatchError(matrix.ErrShapeMismatch))
	})

	It("rejects demonstrations with a different sample count", func() {
		ds := demos(3, 100, 3)
		ds[1].Data = ds[1].Data[:99]
		_, err := channel.Extract(stats, ds, channel.All)
		Expect(err).To(MatchError(matrix.ErrShapeMismatch))
		Expect(err.Error()).To(ContainSubstring("demo2.csv"))
	})

	It("rejects tables narrower than three channels", func() {
		_, err := channel.Extract(stats, demos(1, 100, 2), channel.All)
		Expect(err).To(MatchError(matrix.ErrDimension))

		stats.Mean = filled(100, 2, func(i, j int) float64 { return 0 })
		stats.Deviation = filled(100, 2, func(i, j int) float64 { return 0 })
		_, err = channel.Extract(stats, nil, channel.All)
		Expect(err).To(MatchError(matrix.ErrDimension))
	})
})

package analysis

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/shopscope/shopscope/internal/types"
)

// ProductRow is one flattened product record in the products frame.
type ProductRow struct {
	Name         string  `dataframe:"name"`
	Brand        string  `dataframe:"brand"`
	Price        float64 `dataframe:"price"`
	Rating       float64 `dataframe:"rating"`
	ReviewsCount int     `dataframe:"reviews_count"`
	URL          string  `dataframe:"url"`
}

// ReviewRow is one scored review in the reviews frame.
type ReviewRow struct {
	Product   string  `dataframe:"product"`
	Text      string  `dataframe:"text"`
	Score     float64 `dataframe:"score"`
	Sentiment float64 `dataframe:"sentiment"`
}

// Frames holds the tabular views the report writers consume.
type Frames struct {
	Products dataframe.DataFrame
	Reviews  dataframe.DataFrame
}

// BuildFrames loads scraped records into the two dataframes.
// Sentiment columns carry whatever scoring already ran on the records.
func BuildFrames(products []*types.Product) Frames {
	prodRows := make([]ProductRow, 0, len(products))
	var revRows []ReviewRow

	for _, p := range products {
		prodRows = append(prodRows, ProductRow{
			Name:         p.Name,
			Brand:        p.Brand,
			Price:        p.Price,
			Rating:       p.Rating,
			ReviewsCount: p.ReviewsCount,
			URL:          p.URL,
		})
		for _, r := range p.Reviews {
			revRows = append(revRows, ReviewRow{
				Product:   p.Name,
				Text:      r.Text,
				Score:     r.Score,
				Sentiment: r.Sentiment,
			})
		}
	}

	return Frames{
		Products: productsFrame(prodRows),
		Reviews:  reviewsFrame(revRows),
	}
}

// productsFrame builds the frame, keeping column types stable even
// for an empty scrape (LoadStructs cannot infer from zero rows).
func productsFrame(rows []ProductRow) dataframe.DataFrame {
	if len(rows) == 0 {
		return dataframe.New(
			series.New([]string{}, series.String, "name"),
			series.New([]string{}, series.String, "brand"),
			series.New([]float64{}, series.Float, "price"),
			series.New([]float64{}, series.Float, "rating"),
			series.New([]int{}, series.Int, "reviews_count"),
			series.New([]string{}, series.String, "url"),
		)
	}
	return dataframe.LoadStructs(rows)
}

func reviewsFrame(rows []ReviewRow) dataframe.DataFrame {
	if len(rows) == 0 {
		return dataframe.New(
			series.New([]string{}, series.String, "product"),
			series.New([]string{}, series.String, "text"),
			series.New([]float64{}, series.Float, "score"),
			series.New([]float64{}, series.Float, "sentiment"),
		)
	}
	return dataframe.LoadStructs(rows)
}

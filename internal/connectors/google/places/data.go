package places

import "github.com/hopwise/hopwise/internal/connectors/listings"

var table = listings.Table{
	"Italian": {
		{Name: "Il Buco", Rating: 4.4, Price: "$$$", Reviews: 890},
		{Name: "Peasant", Rating: 4.3, Price: "$$$", Reviews: 670},
		{Name: "Babbo", Rating: 4.5, Price: "$$$$", Reviews: 1100},
		{Name: "Locanda Verde", Rating: 4.4, Price: "$$$", Reviews: 1450},
		{Name: "Torrisi", Rating: 4.6, Price: "$$$$", Reviews: 450},
		{Name: "Don Angie", Rating: 4.7, Price: "$$$", Reviews: 890},
	},
	"Japanese": {
		{Name: "Taka Taka", Rating: 4.6, Price: "$$", Reviews: 780},
		{Name: "Raku", Rating: 4.5, Price: "$$", Reviews: 560},
		{Name: "Okonomi", Rating: 4.4, Price: "$$", Reviews: 890},
		{Name: "Hatsuhana", Rating: 4.3, Price: "$$$", Reviews: 670},
		{Name: "Tanoshi", Rating: 4.7, Price: "$$$", Reviews: 340},
	},
	"Chinese": {
		{Name: "Han Dynasty", Rating: 4.4, Price: "$$", Reviews: 2100},
		{Name: "Xi'an Famous Foods", Rating: 4.5, Price: "$", Reviews: 3890},
		{Name: "Kings County Imperial", Rating: 4.6, Price: "$$$", Reviews: 560},
		{Name: "Congee Village", Rating: 4.2, Price: "$", Reviews: 1890},
	},
	"Mexican": {
		{Name: "Oxomoco", Rating: 4.5, Price: "$$$", Reviews: 670},
		{Name: "Casa Enrique", Rating: 4.6, Price: "$$$", Reviews: 890},
		{Name: "Atla", Rating: 4.4, Price: "$$", Reviews: 1200},
		{Name: "Café Habana", Rating: 4.3, Price: "$", Reviews: 2300},
	},
	"American": {
		{Name: "Union Square Café", Rating: 4.5, Price: "$$$", Reviews: 2100},
		{Name: "The Spotted Pig", Rating: 4.3, Price: "$$", Reviews: 3400},
		{Name: "Minetta Tavern", Rating: 4.4, Price: "$$$", Reviews: 1890},
		{Name: "Peter Luger", Rating: 4.6, Price: "$$$$", Reviews: 4200},
	},
	"Thai": {
		{Name: "Pok Pok NY", Rating: 4.5, Price: "$$", Reviews: 1670},
		{Name: "Kiin Thai", Rating: 4.4, Price: "$$", Reviews: 890},
		{Name: "Ugly Baby", Rating: 4.6, Price: "$$", Reviews: 1100},
	},
	"Indian": {
		{Name: "Bombay Bread Bar", Rating: 4.5, Price: "$$", Reviews: 670},
		{Name: "Benares", Rating: 4.3, Price: "$$$", Reviews: 560},
		{Name: "Utsav", Rating: 4.4, Price: "$$", Reviews: 890},
	},
	"French": {
		{Name: "Bouley", Rating: 4.7, Price: "$$$$", Reviews: 780},
		{Name: "Frenchette", Rating: 4.5, Price: "$$$", Reviews: 1450},
		{Name: "Raoul's", Rating: 4.4, Price: "$$$", Reviews: 1100},
	},
}

var (
	streets       = []string{"Broadway", "6th Ave", "7th Ave", "Houston St", "Bleecker St", "Prince St", "Spring St"}
	neighborhoods = []string{"Greenwich Village", "SoHo", "East Village", "West Village", "Chelsea", "Tribeca"}
	areaCodes     = []string{"212", "646", "917"}
)

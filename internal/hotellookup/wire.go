package hotellookup

import (
	"encoding/json"
	"time"
)

type searchResponse struct {
	SR []struct {
		GaiaID string `json:"gaiaId"`
	} `json:"sr"`
}

type date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

func newDate(t time.Time) date {
	return date{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

type destination struct {
	RegionID string `json:"regionId"`
}

type room struct {
	Adults int `json:"adults"`
}

type propertiesRequest struct {
	Currency      string      `json:"currency"`
	EAPID         int         `json:"eapid"`
	Locale        string      `json:"locale"`
	SiteID        int         `json:"siteId"`
	Destination   destination `json:"destination"`
	CheckInDate   date        `json:"checkInDate"`
	CheckOutDate  date        `json:"checkOutDate"`
	Rooms         []room      `json:"rooms"`
	StartingIndex int         `json:"resultsStartingIndex"`
	ResultsSize   int         `json:"resultsSize"`
	Sort          string      `json:"sort"`
}

type propertiesResponse struct {
	Data struct {
		PropertySearch struct {
			Properties []property `json:"properties"`
		} `json:"propertySearch"`
	} `json:"data"`
}

type property struct {
	Name    string `json:"name"`
	Reviews struct {
		Score float64 `json:"score"`
	} `json:"reviews"`
	Price struct {
		Lead struct {
			Amount float64 `json:"amount"`
		} `json:"lead"`
	} `json:"price"`
	Summary summary `json:"summary"`
	Gallery gallery `json:"propertyGallery"`
}

type summary struct {
	Location json.RawMessage `json:"location"`
}

// locationText returns the summary location when the API sends it as a string.
func (s summary) locationText() string {
	var text string
	if len(s.Location) == 0 || json.Unmarshal(s.Location, &text) != nil {
		return ""
	}
	return text
}

type gallery struct {
	Images []struct {
		Image struct {
			URL string `json:"url"`
		} `json:"image"`
	} `json:"images"`
}

func (g gallery) firstURL() string {
	if len(g.Images) == 0 {
		return ""
	}
	return g.Images[0].Image.URL
}

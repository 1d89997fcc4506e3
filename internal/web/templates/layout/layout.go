package layout

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // success, error or info
	Message string
}

// PageData is common to every full page
type PageData struct {
	Title string
	Flash *FlashMessage
}

func pageTitle(title string) string {
	if title == "" {
		return "Teamify"
	}
	return title + " | Teamify"
}

package usecase

const (
	dateLayout = "2006-01-02"

	defaultPageSize = 20
	maxPageSize     = 100

	// maxPage keeps (page-1)*limit well inside int32 so OFFSET never overflows.
	maxPage = 100_000
)

// pageWindow normalises page/limit query values and returns limit and offset.
func pageWindow(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit, (page - 1) * limit
}

package db

type Card struct {
	Key       string
	Name      string
	Detail    string
	FetchedAt int64
}

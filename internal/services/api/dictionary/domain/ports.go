package domain

import "context"

// ServicePort defines the service contract for the dictionary
type ServicePort interface {
	List(ctx context.Context) (ListResponse, error)
	Upsert(ctx context.Context, e Entry) (Entry, error)
	Search(ctx context.Context, word string) (ListResponse, error)
	Delete(ctx context.Context, word string) (DeleteResponse, error)

	EngineVersion(ctx context.Context) (EngineVersionResponse, error)
	EngineSpeakers(ctx context.Context) (EngineSpeakersResponse, error)
}

// LoaderPort is the read surface other modules use to fetch entries
type LoaderPort interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// Package connectors builds the provider adapters and geocoders named in
// the application settings.
//
// Each provider lives in its own subpackage and knows its own payload
// format:
//   - rideshare: simulated Uber and Lyft fare estimates
//   - yelp: simulated Yelp business search
//   - google/places: live Places API search, or a simulation without a key
//   - geocoding: Nominatim, an offline landmark table and a caching decorator
//
// The Factory maps provider names from configuration onto these packages.
package connectors

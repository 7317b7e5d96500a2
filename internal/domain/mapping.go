package domain

// Mapping is a mapping record owned by the catalog service. It associates a vendor
// option value, scoped to a company, with the catalog's canonical option value.
type Mapping struct {
	ID           string `json:"id,omitempty"`
	CompanyID    string `json:"company_id"`
	VendorOption string `json:"vendor_option"`
	EPOption     string `json:"ep_option"`
	Enabled      bool   `json:"enabled"`
}

// MappingQuery selects the enabled mappings of one company for a set of vendor options
type MappingQuery struct {
	CompanyID     string
	VendorOptions []string
}

// MappingListResponse is the envelope returned by the mapping service
type MappingListResponse struct {
	Data []Mapping `json:"data"`
}

// ProductResult is the outcome of enriching a single product. A non-nil Err means the
// lookup failed and the product passed through with its vendor values.
type ProductResult struct {
	ProductID   string
	CompanyID   string
	LookedUp    bool
	Substituted int
	Err         error
}

// TransformReport summarises a batch once every product has been processed
type TransformReport struct {
	Products    int `json:"products"`
	Lookups     int `json:"lookups"`
	Skipped     int `json:"skipped"`
	Failed      int `json:"failed"`
	Substituted int `json:"substituted"`
}

// Add folds one product result into the report
func (r *TransformReport) Add(result ProductResult) {
	r.Products++
	if !result.LookedUp {
		r.Skipped++
		return
	}
	r.Lookups++
	if result.Err != nil {
		r.Failed++
		return
	}
	r.Substituted += result.Substituted
}

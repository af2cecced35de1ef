package thumbnail

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// GenericCategory is the rotation key for queries that match no catalog entry.
const GenericCategory = "fallback"

// CatalogEntry maps a category key to a pool of pre-vetted image URLs.
type CatalogEntry struct {
	Key  string
	Pool []string
}

// Catalog is an immutable, ordered mapping from category keys to URL pools,
// plus a generic pool for unmatched queries. It is safe for concurrent use.
type Catalog struct {
	entries []CatalogEntry
	exact   map[string]int
	generic []string
}

// NewCatalog validates and copies entries. Keys are lowercased and must be
// unique and non-empty; every pool, including generic, must be non-empty.
// Entry order is the substring-match order used by Lookup.
func NewCatalog(entries []CatalogEntry, generic []string) (*Catalog, error) {
	if len(generic) == 0 {
		return nil, errors.New("catalog: generic pool is empty")
	}
	c := &Catalog{
		entries: make([]CatalogEntry, 0, len(entries)),
		exact:   make(map[string]int, len(entries)),
		generic: append([]string(nil), generic...),
	}
	for i, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Key))
		if key == "" {
			return nil, fmt.Errorf("catalog: entry %d: empty key", i)
		}
		if len(e.Pool) == 0 {
			return nil, fmt.Errorf("catalog: entry %q: empty pool", key)
		}
		if _, dup := c.exact[key]; dup {
			return nil, fmt.Errorf("catalog: duplicate key %q", key)
		}
		c.exact[key] = len(c.entries)
		c.entries = append(c.entries, CatalogEntry{Key: key, Pool: append([]string(nil), e.Pool...)})
	}
	return c, nil
}

// Lookup returns the category key and pool for query: an exact
// case-insensitive key match first, then the first key (in catalog order)
// contained in the lowercased query, then GenericCategory and the generic pool.
// The returned pool must not be modified.
func (c *Catalog) Lookup(query string) (string, []string) {
	q := strings.ToLower(strings.TrimSpace(query))
	if i, ok := c.exact[q]; ok {
		return c.entries[i].Key, c.entries[i].Pool
	}
	if q != "" {
		for _, e := range c.entries {
			if strings.Contains(q, e.Key) {
				return e.Key, e.Pool
			}
		}
	}
	return GenericCategory, c.generic
}

// Fallback returns the rotated catalog URL for query at time now, and the
// category it came from. It never returns an empty URL.
func (c *Catalog) Fallback(query string, now time.Time) (url, category string) {
	category, pool := c.Lookup(query)
	return Rotate(category, pool, now), category
}

// Keys returns category keys in lookup order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Key
	}
	return keys
}

// Pool returns a copy of the pool for key; GenericCategory returns the generic pool.
func (c *Catalog) Pool(key string) ([]string, bool) {
	if key == GenericCategory {
		return append([]string(nil), c.generic...), true
	}
	i, ok := c.exact[strings.ToLower(key)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), c.entries[i].Pool...), true
}

// Contains reports whether url is a member of any pool.
func (c *Catalog) Contains(url string) bool {
	for _, u := range c.generic {
		if u == url {
			return true
		}
	}
	for _, e := range c.entries {
		for _, u := range e.Pool {
			if u == url {
				return true
			}
		}
	}
	return false
}

// DefaultCatalog returns the built-in catalog of brand, industry, product and
// security imagery. It is built once and shared.
var DefaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := NewCatalog(defaultEntries, defaultGenericPool)
	if err != nil {
		panic("thumbnail: invalid built-in catalog: " + err.Error())
	}
	return c
})

const (
	wiki = "https://upload.wikimedia.org/wikipedia/"
	usp  = "https://images.unsplash.com/photo-"
)

var defaultGenericPool = []string{
	usp + "1555421689-491a97ff2040?w=800",
	usp + "1563986768609-322da13575f3?w=800",
	usp + "1550751827-4bd374c3f58b?w=800",
	usp + "1518709268805-4e9042af2176?w=800",
}

var defaultEntries = []CatalogEntry{
	// Automotive brands.
	{"jaguar", []string{
		wiki + "en/thumb/e/e9/Jaguar_Cars_logo.svg/1200px-Jaguar_Cars_logo.svg.png",
		usp + "1544636331-e26879cd4d9b?w=800",
		usp + "1503376780353-7e6692767b70?w=800",
	}},
	{"land rover", []string{
		wiki + "commons/thumb/6/66/Land_Rover_logo.svg/1200px-Land_Rover_logo.svg.png",
		usp + "1549317661-bd32c8ce0db2?w=800",
		usp + "1533473359331-0135ef1b58bf?w=800",
	}},
	{"tesla", []string{
		wiki + "commons/thumb/b/bd/Tesla_Motors.svg/1200px-Tesla_Motors.svg.png",
		usp + "1560958089-b8a1929cea89?w=800",
		usp + "1571019613454-1cb2f99b2d8b?w=800",
		usp + "1593941707882-a5bac6861d75?w=800",
	}},
	{"ford", []string{
		wiki + "commons/thumb/3/3e/Ford_logo_flat.svg/1200px-Ford_logo_flat.svg.png",
		usp + "1583121274602-3e2820c69888?w=800",
		usp + "1552519507-da3b142c6e3d?w=800",
	}},
	{"bmw", []string{
		wiki + "commons/thumb/4/44/BMW.svg/1200px-BMW.svg.png",
		usp + "1555215695-3004980ad54e?w=800",
		usp + "1506905925346-21bda4d32df4?w=800",
	}},
	{"mercedes", []string{
		wiki + "commons/thumb/9/90/Mercedes-Logo.svg/1200px-Mercedes-Logo.svg.png",
		usp + "1558618047-3c8c76ca7d13?w=800",
		usp + "1606664515524-ed2f786a0bd6?w=800",
	}},
	{"toyota", []string{
		wiki + "commons/thumb/c/ca/Toyota-Logo.svg/1200px-Toyota-Logo.svg.png",
		usp + "1621135802920-133df287f89c?w=800",
		usp + "1563013544-824ae1b704d3?w=800",
	}},
	{"volkswagen", []string{
		wiki + "commons/thumb/6/6d/Volkswagen_logo_2019.svg/1200px-Volkswagen_logo_2019.svg.png",
		usp + "1606664515524-ed2f786a0bd6?w=800",
	}},
	{"audi", []string{
		wiki + "commons/thumb/9/92/Audi-Logo_2016.svg/1200px-Audi-Logo_2016.svg.png",
		usp + "1544636331-e26879cd4d9b?w=800",
	}},
	{"porsche", []string{
		wiki + "commons/thumb/c/c7/Porsche_logo.svg/1200px-Porsche_logo.svg.png",
		usp + "1503376780353-7e6692767b70?w=800",
	}},
	{"honda", []string{
		wiki + "commons/thumb/7/76/Honda_Logo.svg/1200px-Honda_Logo.svg.png",
		usp + "1619976215249-95e661cbd259?w=800",
	}},

	// Technology companies.
	{"apple", []string{
		wiki + "commons/f/fa/Apple_logo_black.svg",
		usp + "1517077304055-6e89abbf09b0?w=800",
		usp + "1512054502232-10a0a035d672?w=800",
		usp + "1484704849700-f032a568e944?w=800",
	}},
	{"microsoft", []string{
		wiki + "commons/4/44/Microsoft_logo.svg",
		usp + "1633265486064-086b219458ec?w=800",
		usp + "1586953208448-b95a79798f07?w=800",
		usp + "1606868306217-dbf5046868d2?w=800",
	}},
	{"google", []string{
		wiki + "commons/2/2f/Google_2015_logo.svg",
		usp + "1573804633927-bfcbcd909acd?w=800",
		usp + "1611224923853-80b023f02d71?w=800",
		usp + "1607936854279-55e8f4bc0b9a?w=800",
	}},
	{"amazon", []string{
		wiki + "commons/thumb/a/a9/Amazon_logo.svg/1200px-Amazon_logo.svg.png",
		usp + "1523474253046-8cd2748b5fd2?w=800",
		usp + "1586880244406-556ebe35f282?w=800",
		usp + "1558618047-3c8c76ca7d13?w=800",
	}},
	{"meta", []string{
		wiki + "commons/thumb/7/7b/Meta_Platforms_Inc._logo.svg/1200px-Meta_Platforms_Inc._logo.svg.png",
		usp + "1611162617474-5b21e879e113?w=800",
		usp + "1611605698335-8b1569810432?w=800",
	}},
	{"facebook", []string{
		wiki + "commons/thumb/7/7b/Meta_Platforms_Inc._logo.svg/1200px-Meta_Platforms_Inc._logo.svg.png",
		usp + "1611605698335-8b1569810432?w=800",
	}},
	{"netflix", []string{
		wiki + "commons/thumb/0/08/Netflix_2015_logo.svg/1200px-Netflix_2015_logo.svg.png",
		usp + "1574375927938-d5a98e8ffe85?w=800",
	}},
	{"spotify", []string{
		wiki + "commons/thumb/1/19/Spotify_logo_without_text.svg/1200px-Spotify_logo_without_text.svg.png",
		usp + "1614680376593-902f74cf0d41?w=800",
	}},
	{"nvidia", []string{
		wiki + "commons/thumb/a/a4/NVIDIA_logo.svg/1200px-NVIDIA_logo.svg.png",
		usp + "1591488320449-011701bb6704?w=800",
	}},
	{"intel", []string{
		wiki + "commons/thumb/c/c9/Intel-logo.svg/1200px-Intel-logo.svg.png",
		usp + "1555617981-dac3880eac6e?w=800",
	}},
	{"cisco", []string{
		wiki + "commons/thumb/6/64/Cisco_logo.svg/1200px-Cisco_logo.svg.png",
		usp + "1558494949-ef010cbdcc31?w=800",
	}},
	{"oracle", []string{
		wiki + "commons/thumb/5/50/Oracle_logo.svg/1200px-Oracle_logo.svg.png",
		usp + "1551288049-bebda4e38f71?w=800",
	}},
	{"salesforce", []string{
		wiki + "commons/thumb/f/f9/Salesforce.com_logo.svg/1200px-Salesforce.com_logo.svg.png",
		usp + "1460925895917-afdab827c52f?w=800",
	}},

	// Payments.
	{"visa", []string{
		wiki + "commons/thumb/5/5e/Visa_Inc._logo.svg/1200px-Visa_Inc._logo.svg.png",
		usp + "1556742049-0cfed4f6a45d?w=800",
	}},
	{"mastercard", []string{
		wiki + "commons/thumb/b/b7/MasterCard_Logo.svg/1200px-MasterCard_Logo.svg.png",
		usp + "1559526324-4b87b5e36e44?w=800",
	}},
	{"paypal", []string{
		wiki + "commons/thumb/b/b5/PayPal.svg/1200px-PayPal.svg.png",
		usp + "1563013544-824ae1b704d3?w=800",
	}},

	// Industry sectors.
	{"automotive", []string{
		usp + "1503376780353-7e6692767b70?w=800",
		usp + "1549317661-bd32c8ce0db2?w=800",
		usp + "1552519507-da3b142c6e3d?w=800",
		usp + "1544636331-e26879cd4d9b?w=800",
	}},
	{"banking", []string{
		usp + "1554224155-6726b3ff858f?w=800",
		usp + "1559526324-4b87b5e36e44?w=800",
		usp + "1556742049-0cfed4f6a45d?w=800",
		usp + "1563013544-824ae1b704d3?w=800",
	}},
	{"healthcare", []string{
		usp + "1559757148-5c350d0d3c56?w=800",
		usp + "1576091160399-112ba8d25d1f?w=800",
		usp + "1538108149393-fbbd81895907?w=800",
		usp + "1559757175-0eb30cd8c063?w=800",
	}},
	{"aviation", []string{
		usp + "1540962351504-03099e0a754b?w=800",
		usp + "1556388158-158ea5ccacbd?w=800",
		usp + "1544620347-c4fd4a3d5957?w=800",
	}},
	{"manufacturing", []string{
		usp + "1565514020179-026b92b84bb6?w=800",
		usp + "1581092160562-40aa08e78837?w=800",
		usp + "1581091226825-a6a2a5aee158?w=800",
	}},

	// Products.
	{"iphone", []string{
		usp + "1512054502232-10a0a035d672?w=800",
		usp + "1517077304055-6e89abbf09b0?w=800",
		usp + "1484704849700-f032a568e944?w=800",
	}},
	{"android", []string{
		usp + "1607936854279-55e8f4bc0b9a?w=800",
		usp + "1611224923853-80b023f02d71?w=800",
		usp + "1573804633927-bfcbcd909acd?w=800",
	}},
	{"windows", []string{
		usp + "1633265486064-086b219458ec?w=800",
		usp + "1586953208448-b95a79798f07?w=800",
		usp + "1606868306217-dbf5046868d2?w=800",
	}},

	// Generic security.
	{"security", []string{
		usp + "1555421689-491a97ff2040?w=800",
		usp + "1563986768609-322da13575f3?w=800",
		usp + "1578662996442-48f60103fc96?w=800",
		usp + "1550751827-4bd374c3f58b?w=800",
		usp + "1516321497487-e288fb19713f?w=800",
	}},
	{"cybersecurity", []string{
		usp + "1555421689-491a97ff2040?w=800",
		usp + "1518709268805-4e9042af2176?w=800",
		usp + "1573164713714-d95e436ab8d6?w=800",
		usp + "1563986768609-322da13575f3?w=800",
		usp + "1550751827-4bd374c3f58b?w=800",
	}},
	{"network", []string{
		usp + "1558494949-ef010cbdcc31?w=800",
		usp + "1544197150-b99a580bb7a8?w=800",
		usp + "1558618047-3c8c76ca7d13?w=800",
		usp + "1573804633927-bfcbcd909acd?w=800",
	}},
	{"data", []string{
		usp + "1551288049-bebda4e38f71?w=800",
		usp + "1518709268805-4e9042af2176?w=800",
		usp + "1460925895917-afdab827c52f?w=800",
		usp + "1573164713714-d95e436ab8d6?w=800",
	}},
	{"technology", []string{
		usp + "1518709268805-4e9042af2176?w=800",
		usp + "1519389950473-47ba0277781c?w=800",
		usp + "1581091226825-a6a2a5aee158?w=800",
		usp + "1555617981-dac3880eac6e?w=800",
	}},
}

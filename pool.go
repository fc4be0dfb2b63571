package humanjson

import "sync"

const maxScratchCap = 64 * 1024

var normalizerPool = sync.Pool{
	New: func() any {
		return &normalizer{}
	},
}

var rendererPool = sync.Pool{
	New: func() any {
		return &renderer{}
	},
}

func acquireNormalizer(cmp *keyComparator) *normalizer {
	n := normalizerPool.Get().(*normalizer)
	n.cmp = cmp
	n.depth = 0
	return n
}

func releaseNormalizer(n *normalizer) {
	if n == nil {
		return
	}
	n.cmp = nil
	n.depth = 0
	clear(n.seen)
	normalizerPool.Put(n)
}

func acquireRenderer(opts Options, cmp *keyComparator) *renderer {
	r := rendererPool.Get().(*renderer)
	r.reset(opts, cmp)
	return r
}

func releaseRenderer(r *renderer) {
	if r == nil {
		return
	}
	r.opts = Options{}
	r.cmp = nil
	if cap(r.scratch) > maxScratchCap {
		r.scratch = nil
	} else {
		r.scratch = r.scratch[:0]
	}
	rendererPool.Put(r)
}

package driver

const SaveClaimNodeQuery = `
MERGE (n:Claim {id: $id, run_id: $run_id})
SET n.paper = $paper, n.text = $text
`

const SaveVariableNodeQuery = `
MERGE (n:Variable {id: $id, run_id: $run_id})
SET n.paper = $paper, n.text = $text
`

const SaveGraphEdgeQuery = `
MATCH (a {id: $source, run_id: $run_id}), (b {id: $target, run_id: $run_id})
MERGE (a)-[r:RELATES {relation: $relation, run_id: $run_id}]->(b)
SET r.synergy_id = $synergy_id, r.conflict_id = $conflict_id
`

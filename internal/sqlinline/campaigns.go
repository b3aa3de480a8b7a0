package sqlinline

const QInsertCampaign = `--sql e3cc6338-7a77-4580-a19a-059b3f24d015
insert into campaigns (id, user_id, brand_id, title, objective, audience, target_market, content_dialect, language, status, visual_prefs, created_at)
values ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6, $7, $8, $9, $10, $11::jsonb, now())
returning created_at;
`

const QInsertCampaignPost = `--sql 52bcae6c-a1b7-474a-8f8f-c3bc4fc96588
insert into campaign_posts (id, campaign_id, post_number, title, caption_ar, caption_en, hashtags_ar, hashtags_en, cta, design_notes, image_url)
values ($1::uuid, $2::uuid, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

const QUpdateCampaign = `--sql 14c88540-3876-475a-a73a-90836560c218
update campaigns set
    title = $2,
    objective = $3,
    audience = $4,
    target_market = $5,
    content_dialect = $6,
    language = $7,
    status = $8,
    visual_prefs = $9::jsonb
where id = $1::uuid;
`

const QUpdateCampaignPost = `--sql e39a8a46-aad9-4fdd-ae28-1c25c52be688
update campaign_posts set
    title = $2,
    caption_ar = $3,
    caption_en = $4,
    hashtags_ar = $5,
    hashtags_en = $6,
    cta = $7,
    design_notes = $8,
    image_url = $9
where id = $1::uuid;
`

const QSelectCampaignByID = `--sql 737f3277-786d-470d-83bf-efd35cbd51f0
select id::text, user_id::text, brand_id::text, title, objective, audience, target_market, content_dialect, language, status, visual_prefs, created_at
from campaigns
where id = $1::uuid
limit 1;
`

const QSelectCampaignPosts = `--sql da409bfa-cac0-47f4-bf74-20a92f3b6b78
select id::text, campaign_id::text, post_number, title, caption_ar, caption_en, hashtags_ar, hashtags_en, cta, design_notes, image_url
from campaign_posts
where campaign_id = $1::uuid
order by post_number asc;
`

const QSelectCampaignStories = `--sql e12f1e90-da5a-4f13-a893-9439d46f364c
select id::text, campaign_id::text, story_number, content, interactive_element
from campaign_stories
where campaign_id = $1::uuid
order by story_number asc;
`

const QSelectCampaignReels = `--sql cf64a725-0e49-489f-beee-6195c064efaa
select id::text, campaign_id::text, reel_number, hook, script, cta
from campaign_reels
where campaign_id = $1::uuid
order by reel_number asc;
`

const QDeleteCampaign = `--sql c896425f-8c01-455f-a2b5-310bcb8ffcd0
delete from campaigns
where id = $1::uuid;
`

const QListCampaignsByUser = `--sql 989f8dda-5b45-45d7-a23d-c2b6dbcaa520
select id::text, user_id::text, brand_id::text, title, objective, audience, target_market, content_dialect, language, status, visual_prefs, created_at
from campaigns
where user_id = $1::uuid
order by created_at desc
limit $2;
`

const QInsertCampaignStory = `--sql 49e10554-c9a5-4e48-a2bb-2e3d0602e565
insert into campaign_stories (id, campaign_id, story_number, content, interactive_element)
values ($1::uuid, $2::uuid, $3, $4, $5);
`

const QInsertCampaignReel = `--sql 0eb8f109-73bf-4fbf-86b8-8e0eff6159c0
insert into campaign_reels (id, campaign_id, reel_number, hook, script, cta)
values ($1::uuid, $2::uuid, $3, $4, $5, $6);
`
